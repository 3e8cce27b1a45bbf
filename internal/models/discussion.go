package models

import "time"

type Message struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	Timestamp int64  `json:"ts"` // unix millis
}

func (m Message) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

type Thread struct {
	ID       string    `json:"id"`
	CourseID Ref       `json:"courseId"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

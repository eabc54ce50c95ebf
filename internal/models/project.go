package models

type Project struct {
	ID    string
	Title string
	Desc  string
	Tech  []string
	Link  string
}

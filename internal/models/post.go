// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package models

import "time"

// Post is a blog entry with its comments.
type Post struct {
	ID        string     `json:"_id,omitempty"     yaml:"id,omitempty"`
	Title     string     `json:"title"             yaml:"title"`
	Content   string     `json:"content"           yaml:"content"`
	Image     string     `json:"image"             yaml:"image,omitempty"`
	Author    Author     `json:"author"            yaml:"author"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	Comments  []Comment  `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// AuthoredBy reports whether userID wrote the post.
func (p Post) AuthoredBy(userID string) bool { return p.Author.Is(userID) }

// CommentCount is the number of comments attached to the post.
func (p Post) CommentCount() int { return len(p.Comments) }

// PostInput is the payload of create and update calls.
//
// Author is only sent on creation; the remote API derives ownership from the
// bearer token on update.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
	Author  string `json:"author,omitempty"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        string     `json:"_id,omitempty"       yaml:"id,omitempty"`
	Content   string     `json:"content"             yaml:"content"`
	Author    Author     `json:"author"              yaml:"author"`
	Post      string     `json:"post,omitempty"      yaml:"post,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// AuthoredBy reports whether userID wrote the comment.
func (c Comment) AuthoredBy(userID string) bool { return c.Author.Is(userID) }

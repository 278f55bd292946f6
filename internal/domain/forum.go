package domain

import "time"

type (
	AuthorId = int64
	BookId   = int64
	ThreadId = int64
	PostId   = int64
)

// Authors and books are read-only reference data, populated by the seed tool.
type Author struct {
	Id          AuthorId
	Name        string
	DateOfBirth string
}

type Book struct {
	Id          BookId
	Title       string
	Description string
	Genre       string
	AuthorId    AuthorId
}

type Thread struct {
	Id        ThreadId
	BookId    BookId
	UserId    UserId
	Title     string
	CreatedAt time.Time
}

// ThreadSummary is a thread row enriched with its book title, as shown on
// the thread list.
type ThreadSummary struct {
	Thread
	BookTitle string
}

// ThreadDetail is a single thread enriched with everything the thread page
// displays besides the posts themselves.
type ThreadDetail struct {
	Thread
	StarterName     UserName
	BookTitle       string
	BookDescription string
}

type Post struct {
	Id        PostId
	ThreadId  ThreadId
	UserId    UserId
	Content   string
	CreatedAt time.Time
}

// PostView is a post row enriched with its author name, in display order.
type PostView struct {
	Content    string
	CreatedAt  time.Time
	AuthorName UserName
}

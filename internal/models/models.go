package models

// User is a registered account. The password hash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Blogs        []BlogRef `json:"blogs"`
}

// BlogRef is the shape of a blog embedded in a user listing.
type BlogRef struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// UserRef is the owner info embedded in a blog.
type UserRef struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	ID       int64  `json:"id"`
}

type Blog struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	URL    string  `json:"url"`
	Likes  int     `json:"likes"`
	User   UserRef `json:"user"`
}

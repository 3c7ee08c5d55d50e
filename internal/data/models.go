package data

import (
	"html/template"
	"time"
)

// Role governs what a user may do.
type Role string

const (
	RoleReader Role = "reader"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// PostState is the visibility state of a post. Pending posts are only
// visible to their author and to admins.
type PostState int

const (
	StatePending   PostState = 0
	StatePublished PostState = 1
)

// User represents a registered account.
type User struct {
	ID           int64  `db:"id"`
	FullName     string `db:"ad_soyad"`
	Email        string `db:"email"`
	PasswordHash string `db:"sifre"`
	Role         Role   `db:"rol"`
	AvatarFile   string `db:"profil_resmi"`
	Bio          string `db:"biyografi"`
}

// Post represents a single blog post.
type Post struct {
	ID        int64     `db:"id"`
	AuthorID  int64     `db:"author_id"`
	Title     string    `db:"baslik"`
	Body      string    `db:"icerik"`
	Category  string    `db:"kategori"`
	ImageFile string    `db:"resim"`
	State     PostState `db:"durum"`
	Views     int64     `db:"goruntulenme"`
	CreatedAt time.Time `db:"tarih"`
}

// HTMLBody exposes the stored body to templates. The body is sanitized
// at write time, so marking it trusted here does not bypass the policy.
func (p *Post) HTMLBody() template.HTML {
	return template.HTML(p.Body)
}

// Published reports whether the post is publicly visible.
func (p *Post) Published() bool {
	return p.State == StatePublished
}

// PostDetail is a post joined with its author's display fields.
type PostDetail struct {
	Post
	AuthorName   string `db:"ad_soyad"`
	AuthorAvatar string `db:"profil_resmi"`
	AuthorBio    string `db:"biyografi"`
}

// Comment represents a comment on a post. ParentID is nil for top-level
// comments; legacy rows may carry 0 instead of NULL, which means the same.
type Comment struct {
	ID        int64     `db:"id"`
	PostID    int64     `db:"post_id"`
	UserID    int64     `db:"user_id"`
	Body      string    `db:"yorum"`
	ParentID  *int64    `db:"parent_id"`
	CreatedAt time.Time `db:"tarih"`
}

// TopLevel reports whether the comment starts a thread.
func (c *Comment) TopLevel() bool {
	return c.ParentID == nil || *c.ParentID == 0
}

// CommentDetail is a comment joined with its author's display name,
// plus the rendered body produced by the service layer.
type CommentDetail struct {
	Comment
	AuthorName string        `db:"ad_soyad"`
	HTMLBody   template.HTML `db:"-"`
}

// ContactMessage is a contact-form submission, readable by admins.
type ContactMessage struct {
	ID        int64     `db:"id"`
	Name      string    `db:"isim"`
	Email     string    `db:"email"`
	Subject   string    `db:"konu"`
	Body      string    `db:"mesaj"`
	Read      bool      `db:"okundu"`
	CreatedAt time.Time `db:"tarih"`
}

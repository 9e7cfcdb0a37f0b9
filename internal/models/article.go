package models

import "time"

// Article is a blog post owned by exactly one author.
type Article struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string     `json:"title" gorm:"type:varchar(200);not null"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;type:varchar(255);not null"`
	Excerpt     string     `json:"excerpt" gorm:"type:varchar(500);not null"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	ImageURL    string     `json:"imageUrl" gorm:"type:varchar(500)"`
	Category    string     `json:"category" gorm:"type:varchar(100);index"`
	IsPublished bool       `json:"published" gorm:"column:is_published;not null;index"`
	IsFeatured  bool       `json:"featured" gorm:"column:is_featured;not null"`
	IsTrending  bool       `json:"trending" gorm:"column:is_trending;not null"`
	ViewCount   int64      `json:"viewCount" gorm:"not null"`
	PublishedAt *time.Time `json:"publishedAt"`
	AuthorID    string     `json:"authorId" gorm:"type:varchar(36);not null;index"`
	Author      *User      `json:"-" gorm:"foreignKey:AuthorID"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SetPublished applies the publish transition. PublishedAt is stamped only when
// the article goes from unpublished to published; unpublishing keeps it.
func (a *Article) SetPublished(published bool, now time.Time) {
	if !a.IsPublished && published {
		t := now
		a.PublishedAt = &t
	}
	a.IsPublished = published
}

// ArticleSortColumns whitelists the sortBy values accepted for article listings.
var ArticleSortColumns = map[string]string{
	"id":          "id",
	"title":       "title",
	"category":    "category",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"publishedAt": "published_at",
	"viewCount":   "view_count",
}

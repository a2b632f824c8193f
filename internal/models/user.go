package models

import "time"

// User is a registered campus account.
type User struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Campus       string    `db:"campus" json:"campus"`
	Avatar       string    `db:"avatar" json:"avatar"`
	StudentID    string    `db:"student_id" json:"student_id"`
	Program      string    `db:"program" json:"program"`
	YearLevel    string    `db:"year_level" json:"year_level"`
	Department   string    `db:"department" json:"department"`
	Bio          string    `db:"bio" json:"bio"`
	CoverPhoto   string    `db:"cover_photo" json:"cover_photo"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	Name       string `json:"name"`
	Campus     string `json:"campus"`
	Avatar     string `json:"avatar"`
	StudentID  string `json:"student_id"`
	Program    string `json:"program"`
	YearLevel  string `json:"year_level"`
	Department string `json:"department"`
	Bio        string `json:"bio"`
	CoverPhoto string `json:"cover_photo"`
}

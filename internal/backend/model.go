package backend

import "time"

// User is an account row.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Visit is one gym day of a user. Date is YYYY-MM-DD.
type Visit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

type Squad struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ---------- request / response DTOs ----------

type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type VisitRequest struct {
	Date string `json:"date" binding:"required"`
}

type SquadRequest struct {
	Name string `json:"name" binding:"required"`
}

type JoinRequest struct {
	UserID string `json:"userId" binding:"required"`
}

package domain

type User struct {
	ID        string `db:"id" json:"_id"`
	Username  string `db:"username" json:"username"`
	Email     string `db:"email" json:"email"`
	Hash      string `db:"password_hash" json:"-"`
	Avatar    string `db:"avatar" json:"avatar"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type UserUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

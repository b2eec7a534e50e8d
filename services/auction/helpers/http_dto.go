package helpers

// Form DTOs. Field names match the HTML form inputs.

type CreateListingForm struct {
	Title       string  `form:"title" binding:"required,notblank,max=64"`
	Description string  `form:"description" binding:"required,notblank,max=300"`
	BaseBid     float64 `form:"base_bid" binding:"required,gte=1"`
	ImageURL    string  `form:"image_url" binding:"omitempty,url,max=200"`
	Category    string  `form:"category" binding:"required"`
}

type BidForm struct {
	Amount float64 `form:"bid_amount" binding:"required,gt=0"`
}

type CommentForm struct {
	Body string `form:"body" binding:"required,max=300"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type RegisterForm struct {
	Username     string `form:"username" binding:"required,max=150"`
	Email        string `form:"email" binding:"omitempty,email,max=254"`
	Password     string `form:"password" binding:"required"`
	Confirmation string `form:"confirmation" binding:"required"`
	FirstName    string `form:"first_name" binding:"max=150"`
	LastName     string `form:"last_name" binding:"max=150"`
}

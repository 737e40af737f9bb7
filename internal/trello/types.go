package trello

// Board mirrors the subset of a Trello board the app reads.
type Board struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// List is a column within a board. The parent board id is not kept.
type List struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Card is a Trello card augmented with the locally edited price and checked
// flag. Both start zeroed when a card is fetched from the API.
type Card struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Price   float64 `json:"price" yaml:"price"`
	Checked bool    `json:"checked" yaml:"checked"`
}

// Credentials carry the API key and member token sent with every request.
type Credentials struct {
	APIKey string
	Token  string
}

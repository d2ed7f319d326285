package domain

type Provider struct {
	ID                      uint   `json:"id"`
	Name                    string `json:"name"`
	Address                 string `json:"address"`
	Number                  string `json:"number"`
	TouristicOperatorPermit string `json:"touristicOperatorPermit"`
	UserID                  *uint  `json:"userId,omitempty"`
}

type Guest struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
	Age    int    `json:"age"`
	UserID *uint  `json:"userId,omitempty"`
}

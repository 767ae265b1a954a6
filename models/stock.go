package models

// Stock tracks remaining copies per physical variant. The e-book has no
// stock record and is always purchasable.
type Stock struct {
	Paperback int `bson:"paperback" json:"paperback"`
	Hardcover int `bson:"hardcover" json:"hardcover"`
}

func (s Stock) Negative() bool {
	return s.Paperback < 0 || s.Hardcover < 0
}

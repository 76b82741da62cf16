package constants

// LineLabel is the classification assigned to a normalized receipt line.
type LineLabel string

const (
	LineItem     LineLabel = "ITEM"
	LineMetadata LineLabel = "METADATA"
)

// MetadataKeywords mark a line as receipt boilerplate rather than a purchase.
// Matched on word boundaries against the lowercased line.
var MetadataKeywords = []string{
	"subtotal",
	"sub total",
	"total",
	"amount due",
	"balance due",
	"tax",
	"tip",
	"gratuity",
	"change",
	"cash",
	"payment",
	"tender",
	"visa",
	"mastercard",
	"amex",
	"american express",
	"discover",
	"debit",
	"credit",
	"receipt",
	"invoice",
	"merchant",
	"terminal",
	"auth",
	"approval",
	"reference",
	"order #",
	"order no",
	"ticket",
	"table",
	"guest",
	"server",
	"cashier",
	"store",
	"location",
	"phone",
	"tel",
	"address",
	"thank you",
	"thanks for",
	"loyalty",
	"rewards",
	"points",
	"member",
}

// TotalPenaltyKeywords disqualify a money-bearing line from being the payable
// total even when it contains the word "total".
var TotalPenaltyKeywords = []string{
	"subtotal",
	"sub total",
	"tax",
	"tip",
	"gratuity",
	"discount",
	"coupon",
	"savings",
	"change",
	"cash",
	"tender",
}

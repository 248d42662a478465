package matching

import "boreal/internal/models"

// Candidate is one ranked lender product with the rules it passed.
type Candidate struct {
	ProductID  uint     `json:"productId"`
	LenderID   uint     `json:"lenderId"`
	LenderName string   `json:"lenderName"`
	Product    string   `json:"product"`
	Category   string   `json:"category"`
	MinAmount  float64  `json:"minAmount"`
	MaxAmount  float64  `json:"maxAmount"`
	Score      float64  `json:"score"`
	Rules      []string `json:"rules"`
}

func newCandidate(p models.LenderProduct, score float64, rules []string) Candidate {
	lenderName := ""
	if p.Lender != nil {
		lenderName = p.Lender.Name
	}
	return Candidate{
		ProductID:  p.ID,
		LenderID:   p.LenderID,
		LenderName: lenderName,
		Product:    p.Name,
		Category:   p.Category,
		MinAmount:  p.MinAmount,
		MaxAmount:  p.MaxAmount,
		Score:      score,
		Rules:      rules,
	}
}

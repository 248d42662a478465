package payments

import (
	"testing"

	"boreal/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFeeCents(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"one percent above floor", 50000, 50000},
		{"exactly the floor", 25000, 25000},
		{"small amount hits floor", 5000, 25000},
		{"zero hits floor", 0, 25000},
		{"large amount", 1000000, 1000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FeeCents(tt.amount))
		})
	}
}

func TestCreateFeeIntent_Unconfigured(t *testing.T) {
	service := NewService("")

	_, err := service.CreateFeeIntent(&models.Application{RequestedAmount: 50000})
	assert.Error(t, err)
}

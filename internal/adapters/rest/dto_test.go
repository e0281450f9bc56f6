package rest

import (
	"testing"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

func TestPriceDisplay(t *testing.T) {
	cases := []struct {
		name      string
		price     float64
		priceType string
		want      string
	}{
		{"monthly rent with separators", 1500000, domain.PriceTypeMonth, "MWK 1,500,000/month"},
		{"weekly rent", 45000, domain.PriceTypeWeek, "MWK 45,000/week"},
		{"daily rent", 15000, domain.PriceTypeDay, "MWK 15,000/day"},
		{"sale has no period suffix", 85000000, domain.PriceTypeSale, "MWK 85,000,000"},
		{"fraction is dropped", 1234.56, domain.PriceTypeMonth, "MWK 1,235/month"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := priceDisplay("MWK", tc.price, tc.priceType); got != tc.want {
				t.Errorf("priceDisplay = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestToPropertyDetailsResponse(t *testing.T) {
	agentUser := &domain.User{Username: "jbanda", FirstName: "John", LastName: "Banda", Email: "jb@example.com"}
	agent := &domain.Agent{ID: uuid.New(), UserID: uuid.New(), User: agentUser, Company: "Banda Estates", IsActive: true}

	p := &domain.Property{
		ID:        uuid.New(),
		Title:     "Sunny apartment",
		Price:     350000,
		PriceType: domain.PriceTypeMonth,
		Images:    []string{"/media/properties/a.jpg", "/media/properties/b.jpg"},
		Agent:     agent,
	}

	resp := toPropertyDetailsResponse(p, "MWK")

	if resp.MainImage != "/media/properties/a.jpg" {
		t.Errorf("main_image = %q", resp.MainImage)
	}
	if resp.PriceDisplay != "MWK 350,000/month" {
		t.Errorf("price_display = %q", resp.PriceDisplay)
	}
	if resp.Agent == nil {
		t.Fatal("expected embedded agent")
	}
	if resp.Agent.FullName != "John Banda" || resp.Agent.Username != "jbanda" {
		t.Errorf("agent = %+v", resp.Agent)
	}
}

func TestToPropertyCardResponseWithoutAgent(t *testing.T) {
	p := &domain.Property{ID: uuid.New(), Title: "Land plot", Price: 5000000, PriceType: domain.PriceTypeSale}
	resp := toPropertyCardResponse(p, "MWK")

	if resp.PriceDisplay != "MWK 5,000,000" {
		t.Errorf("price_display = %q", resp.PriceDisplay)
	}
	if resp.MainImage != "" {
		t.Errorf("main_image = %q, want empty", resp.MainImage)
	}
}

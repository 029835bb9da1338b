package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/fitpulse/gym-api/internal/models"
)

// Checkout creates Mercado Pago preferences for membership plans. The
// webhook/settlement side is out of scope; the API only hands the
// caller a checkout URL.
type Checkout struct {
	prefs preference.Client
}

func NewCheckout(accessToken string) (*Checkout, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("missing mercado pago access token")
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercado pago config: %w", err)
	}

	return &Checkout{
		prefs: preference.NewClient(cfg),
	}, nil
}

type CheckoutLink struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

func (c *Checkout) CreateForPlan(
	ctx context.Context,
	plan *models.MembershipPlan,
	userID uint,
) (*CheckoutLink, error) {

	req := preference.Request{
		ExternalReference: fmt.Sprintf("plan:%d;user:%d", plan.ID, userID),
		Items: []preference.ItemRequest{
			{
				Title:       plan.Name,
				Description: plan.Description,
				Quantity:    1,
				UnitPrice:   plan.Price,
			},
		},
	}

	resp, err := c.prefs.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &CheckoutLink{
		PreferenceID: resp.ID,
		InitPoint:    resp.InitPoint,
	}, nil
}

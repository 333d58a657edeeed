package registration

import (
	"time"

	"github.com/camphq/backend/internal/domain/camp"
	"github.com/camphq/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SiblingDiscountPercent is the flat discount applied to every camper after
// the first in a single checkout.
var SiblingDiscountPercent = decimal.NewFromInt(10)

// AddonLine is a resolved addon selection ready for pricing: the unit price
// and taxable flag are snapshotted from the catalog at quote time.
type AddonLine struct {
	Name      string
	Quantity  int
	UnitPrice valueobject.Money
	IsTaxable bool
}

// LineTotal returns quantity times unit price
func (l AddonLine) LineTotal() valueobject.Money {
	return l.UnitPrice.MultiplyByInt(int64(l.Quantity))
}

// PricingInput is everything the calculator needs for one camper. The clock
// is passed in so quotes are deterministic and testable.
type PricingInput struct {
	Camp        *camp.Camp
	CamperIndex int
	Addons      []AddonLine
	Promo       *camp.PromoCode
	// TaxRatePercent is the tenant's sales tax rate, e.g. 8.25 for 8.25%.
	// It applies only to taxable addon lines, never to the camp fee.
	TaxRatePercent decimal.Decimal
	Now            time.Time
}

// Quote is the per-camper price breakdown. All amounts are rounded to cents.
type Quote struct {
	BasePrice       valueobject.Money
	SiblingDiscount valueobject.Money
	PromoDiscount   valueobject.Money
	AddonSubtotal   valueobject.Money
	Tax             valueobject.Money
	Total           valueobject.Money
}

// Price computes the price breakdown for one camper.
//
// The camp fee is the early-bird price when the deadline has not passed,
// otherwise the base price. Campers after the first get a sibling discount on
// the camp fee. A promo code discounts only the first camper. Sales tax is
// collected on taxable addons at the tenant rate. The total never goes below
// zero.
func Price(input PricingInput) Quote {
	base := valueobject.NewMoneyUSD(input.Camp.EffectivePriceAt(input.Now)).RoundToCents()

	var addonSubtotal, taxableSubtotal valueobject.Money
	addonSubtotal = valueobject.ZeroUSD()
	taxableSubtotal = valueobject.ZeroUSD()
	for _, line := range input.Addons {
		lineTotal := line.LineTotal().RoundToCents()
		addonSubtotal = addonSubtotal.MustAdd(lineTotal)
		if line.IsTaxable {
			taxableSubtotal = taxableSubtotal.MustAdd(lineTotal)
		}
	}

	sibling := valueobject.ZeroUSD()
	if input.CamperIndex >= 1 {
		sibling = base.Percent(SiblingDiscountPercent)
	}

	promo := valueobject.ZeroUSD()
	if input.Promo != nil && input.CamperIndex == 0 && input.Promo.IsValidAt(input.Now) {
		promo = promoDiscount(input.Promo, base, addonSubtotal)
	}

	tax := taxableSubtotal.Percent(input.TaxRatePercent)

	total := base.
		MustSubtract(sibling).
		MustSubtract(promo).
		MustAdd(addonSubtotal).
		MustAdd(tax).
		FloorAtZero()

	return Quote{
		BasePrice:       base,
		SiblingDiscount: sibling,
		PromoDiscount:   promo,
		AddonSubtotal:   addonSubtotal,
		Tax:             tax,
		Total:           total,
	}
}

// promoDiscount computes the discount for a validated promo code. The
// eligible amount depends on the code's scope; fixed codes are capped at the
// eligible amount so a discount never exceeds what it applies to.
func promoDiscount(promo *camp.PromoCode, base, addonSubtotal valueobject.Money) valueobject.Money {
	eligible := valueobject.ZeroUSD()
	if promo.AppliesToRegistration() {
		eligible = eligible.MustAdd(base)
	}
	if promo.AppliesToAddons() {
		eligible = eligible.MustAdd(addonSubtotal)
	}

	switch promo.Type {
	case camp.PromoTypePercentage:
		return eligible.Percent(promo.Value)
	case camp.PromoTypeFixed:
		return valueobject.NewMoneyUSD(promo.Value).RoundToCents().Min(eligible)
	default:
		return valueobject.ZeroUSD()
	}
}

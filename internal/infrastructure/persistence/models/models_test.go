package models

import (
	"reflect"
	"testing"

	campdomain "github.com/camphq/backend/internal/domain/camp"
	"github.com/camphq/backend/internal/domain/identity"
	"github.com/camphq/backend/internal/domain/party"
	regdomain "github.com/camphq/backend/internal/domain/registration"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

// Domain entities must stay free of GORM tags; persistence concerns live in
// this package only. A tag sneaking back into the domain layer would let a
// repository bypass the model mappers without anyone noticing.
func TestDomainEntitiesCarryNoGormTags(t *testing.T) {
	entities := []any{
		shared.BaseEntity{},
		shared.BaseAggregateRoot{},
		shared.TenantAggregateRoot{},
		identity.Tenant{},
		party.Profile{},
		party.Athlete{},
		party.AuthorizedPickup{},
		campdomain.Camp{},
		campdomain.Addon{},
		campdomain.AddonVariant{},
		campdomain.PromoCode{},
		regdomain.Registration{},
		regdomain.RegistrationAddon{},
	}

	for _, entity := range entities {
		typ := reflect.TypeOf(entity)
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			_, tagged := field.Tag.Lookup("gorm")
			assert.False(t, tagged, "%s.%s carries a gorm tag", typ.Name(), field.Name)
		}
	}
}

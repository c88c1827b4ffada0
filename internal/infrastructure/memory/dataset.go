package memory

import "github.com/oksasatya/rupaykg-biomass/internal/domain/entity"

type dataset struct {
	users      []entity.User
	farmers    []entity.Farmer
	events     []entity.BiomassEvent
	dispatches []entity.Dispatch
	audit      []entity.AuditLog
}

func (d *dataset) clone() *dataset {
	return &dataset{
		users:      append([]entity.User(nil), d.users...),
		farmers:    append([]entity.Farmer(nil), d.farmers...),
		events:     append([]entity.BiomassEvent(nil), d.events...),
		dispatches: append([]entity.Dispatch(nil), d.dispatches...),
		audit:      append([]entity.AuditLog(nil), d.audit...),
	}
}

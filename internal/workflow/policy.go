package workflow

import (
	"github.com/Mzarifin59/letter-pln-sub001/internal/entity"
)

// policy is the single authorization table for workflow actions, keyed by
// (action, kategori, role). Every dispatch consults it before the engine
// runs, including delete, which historically had no check at all.
var policy = map[Action]map[string][]string{
	ActionPublish: {
		entity.KategoriSuratJalan:  {entity.RoleAdmin, entity.RoleVendor},
		entity.KategoriBongkaran:   {entity.RoleAdmin, entity.RoleVendor},
		entity.KategoriPemeriksaan: {entity.RoleAdmin, entity.RoleVendor},
	},
	ActionEdit: {
		entity.KategoriSuratJalan:  {entity.RoleAdmin, entity.RoleVendor},
		entity.KategoriBongkaran:   {entity.RoleAdmin, entity.RoleVendor},
		entity.KategoriPemeriksaan: {entity.RoleAdmin, entity.RoleVendor},
	},
	ActionApprove: {
		entity.KategoriSuratJalan:  {entity.RoleSupervisor},
		entity.KategoriBongkaran:   {entity.RoleSupervisor, entity.RoleGarduInduk},
		entity.KategoriPemeriksaan: {entity.RoleSupervisor},
	},
	ActionReject: {
		entity.KategoriSuratJalan:  {entity.RoleAdmin, entity.RoleSupervisor, entity.RoleGarduInduk},
		entity.KategoriBongkaran:   {entity.RoleAdmin, entity.RoleSupervisor, entity.RoleGarduInduk},
		entity.KategoriPemeriksaan: {entity.RoleAdmin, entity.RoleSupervisor, entity.RoleGarduInduk},
	},
	ActionDelete: {
		entity.KategoriSuratJalan:  {entity.RoleAdmin},
		entity.KategoriBongkaran:   {entity.RoleAdmin},
		entity.KategoriPemeriksaan: {entity.RoleAdmin},
	},
}

// Allowed reports whether the role may run the action on the kategori.
func Allowed(action Action, kategori, role string) bool {
	byKategori, ok := policy[action]
	if !ok {
		return false
	}
	roles, ok := byKategori[kategori]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

package router

import (
	"sort"

	"github.com/gblsmlo/lemind/internal/transport/http/ez"
)

// A module implements one or both interfaces.
type APIModule interface{ MountAPI(ez.Groups) }
type AdminModule interface{ MountAdmin(ez.EZ) }

// Modules mount in ascending priority; the default is 100.
type prioritizer interface{ Priority() int }

// Registry collects the modules of one process.
type Registry struct {
	api   []APIModule
	admin []AdminModule
}

// Register dispatches each module by the interfaces it implements.
func (r *Registry) Register(mods ...any) {
	for _, mod := range mods {
		if m, ok := mod.(APIModule); ok {
			r.api = append(r.api, m)
		}
		if m, ok := mod.(AdminModule); ok {
			r.admin = append(r.admin, m)
		}
	}
}

func (r *Registry) MountAllAPI(g ez.Groups) {
	mods := append([]APIModule(nil), r.api...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(g)
	}
}

func (r *Registry) MountAllAdmin(e ez.EZ) {
	mods := append([]AdminModule(nil), r.admin...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAdmin(e)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}

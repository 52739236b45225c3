package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/shift"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/cache"
)

type ShiftService struct {
	shift.ShiftRepository
	override shift.SaturdayOverride

	directory *cache.ReadThrough[string, shift.Directory]
}

func NewShiftService(repo shift.ShiftRepository, override shift.SaturdayOverride) *ShiftService {
	return &ShiftService{
		ShiftRepository: repo,
		override:        override,
		directory: cache.NewReadThrough(5*time.Minute, func(ctx context.Context, _ string) (shift.Directory, error) {
			defs, err := repo.ListActive(ctx)
			if err != nil {
				return nil, err
			}
			dir := make(shift.Directory, len(defs))
			for _, d := range defs {
				dir[d.Code] = d
			}
			return dir, nil
		}),
	}
}

// List implements shift.Service.
func (s *ShiftService) List(ctx context.Context) ([]shift.Definition, error) {
	return s.ListActive(ctx)
}

// WindowFor implements shift.Service.
func (s *ShiftService) WindowFor(ctx context.Context, code string, date time.Time) (shift.Window, error) {
	dir, err := s.directory.Get(ctx, "active")
	if err != nil {
		return shift.Window{}, fmt.Errorf("load shift directory: %w", err)
	}
	def, ok := dir[code]
	if !ok {
		return shift.Window{}, shift.ErrShiftNotFound
	}
	return shift.ResolveWindow(def, date, dir, s.override)
}

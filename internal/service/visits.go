package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"perpus-server/internal/models"
)

// Visit logs. Class visits record a whole class using the library during
// scheduled lesson hours; student visits record one individual's ad hoc
// visit. Both reference students, teachers and subjects by name, not by id.

func (s *DefaultService) RecordClassVisit(ctx context.Context, req models.ClassVisitRequest) (*models.ClassVisit, error) {
	visit := models.ClassVisit{
		ID:      uuid.New().String(),
		Date:    req.Date,
		Class:   req.Class,
		Teacher: req.Teacher,
		Subject: req.Subject,
		Hours:   strings.Join(req.Hours, ", "),
	}
	err := s.store.Update(ctx, func(state *models.State) error {
		state.ClassVisits = append(state.ClassVisits, visit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (s *DefaultService) ListClassVisits() []models.ClassVisit {
	return s.store.Snapshot().ClassVisits
}

func (s *DefaultService) DeleteClassVisit(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(state *models.State) error {
		state.ClassVisits = deleteByID(state.ClassVisits, id, func(v models.ClassVisit) string { return v.ID })
		return nil
	})
}

func (s *DefaultService) RecordStudentVisit(ctx context.Context, req models.StudentVisitRequest) (*models.StudentVisit, error) {
	visit := models.StudentVisit{
		ID:      uuid.New().String(),
		Date:    req.Date,
		Time:    req.Time,
		Class:   req.Class,
		Student: req.Student,
		Purpose: req.Purpose,
	}
	err := s.store.Update(ctx, func(state *models.State) error {
		state.StudentVisits = append(state.StudentVisits, visit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

// UpdateStudentVisit rewrites every field of an existing visit entry. A
// missing id is a silent no-op, mirroring deletes.
func (s *DefaultService) UpdateStudentVisit(ctx context.Context, id string, req models.StudentVisitRequest) (*models.StudentVisit, error) {
	var updated *models.StudentVisit
	err := s.store.Update(ctx, func(state *models.State) error {
		for i := range state.StudentVisits {
			if state.StudentVisits[i].ID == id {
				state.StudentVisits[i] = models.StudentVisit{
					ID:      id,
					Date:    req.Date,
					Time:    req.Time,
					Class:   req.Class,
					Student: req.Student,
					Purpose: req.Purpose,
				}
				v := state.StudentVisits[i]
				updated = &v
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DefaultService) ListStudentVisits() []models.StudentVisit {
	return s.store.Snapshot().StudentVisits
}

func (s *DefaultService) DeleteStudentVisit(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(state *models.State) error {
		state.StudentVisits = deleteByID(state.StudentVisits, id, func(v models.StudentVisit) string { return v.ID })
		return nil
	})
}

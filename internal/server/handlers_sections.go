package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/careeridream/backend/internal/db"
	"github.com/careeridream/backend/internal/profile"
)

// sectionOps binds one child collection's storage operations. All five
// sections share the same handler shape; only the types and the storage
// calls differ.
type sectionOps[I any, R any] struct {
	section string
	list    func(ctx context.Context, profileID uuid.UUID) ([]R, error)
	create  func(ctx context.Context, profileID uuid.UUID, in *I) (*R, error)
	update  func(ctx context.Context, profileID, id uuid.UUID, in *I) (*R, error)
	remove  func(ctx context.Context, profileID, id uuid.UUID) error
	replace func(ctx context.Context, profileID uuid.UUID, items []I) (*profile.Profile, error)
}

// registerSectionRoutes wires list/create/update/delete plus a bulk
// replace for every child collection.
func registerSectionRoutes(mux *http.ServeMux, s *Server) {
	registerSection(mux, s, "/profiles/me/skills", sectionOps[profile.SkillInput, profile.Skill]{
		section: profile.SectionSkills,
		list:    s.db.ListSkills,
		create:  s.db.CreateSkill,
		update:  s.db.UpdateSkill,
		remove:  s.db.DeleteSkill,
		replace: func(ctx context.Context, profileID uuid.UUID, items []profile.SkillInput) (*profile.Profile, error) {
			p, _, err := s.db.ReplaceSections(ctx, profileID, &db.SectionPayload{Skills: &items})
			return p, err
		},
	})

	registerSection(mux, s, "/profiles/me/experiences", sectionOps[profile.ExperienceInput, profile.Experience]{
		section: profile.SectionExperiences,
		list:    s.db.ListExperiences,
		create:  s.db.CreateExperience,
		update:  s.db.UpdateExperience,
		remove:  s.db.DeleteExperience,
		replace: func(ctx context.Context, profileID uuid.UUID, items []profile.ExperienceInput) (*profile.Profile, error) {
			p, _, err := s.db.ReplaceSections(ctx, profileID, &db.SectionPayload{Experiences: &items})
			return p, err
		},
	})

	registerSection(mux, s, "/profiles/me/educations", sectionOps[profile.EducationInput, profile.Education]{
		section: profile.SectionEducations,
		list:    s.db.ListEducations,
		create:  s.db.CreateEducation,
		update:  s.db.UpdateEducation,
		remove:  s.db.DeleteEducation,
		replace: func(ctx context.Context, profileID uuid.UUID, items []profile.EducationInput) (*profile.Profile, error) {
			p, _, err := s.db.ReplaceSections(ctx, profileID, &db.SectionPayload{Educations: &items})
			return p, err
		},
	})

	registerSection(mux, s, "/profiles/me/certifications", sectionOps[profile.CertificationInput, profile.Certification]{
		section: profile.SectionCertifications,
		list:    s.db.ListCertifications,
		create:  s.db.CreateCertification,
		update:  s.db.UpdateCertification,
		remove:  s.db.DeleteCertification,
		replace: func(ctx context.Context, profileID uuid.UUID, items []profile.CertificationInput) (*profile.Profile, error) {
			p, _, err := s.db.ReplaceSections(ctx, profileID, &db.SectionPayload{Certifications: &items})
			return p, err
		},
	})

	registerSection(mux, s, "/profiles/me/achievements", sectionOps[profile.AchievementInput, profile.Achievement]{
		section: profile.SectionAchievements,
		list:    s.db.ListAchievements,
		create:  s.db.CreateAchievement,
		update:  s.db.UpdateAchievement,
		remove:  s.db.DeleteAchievement,
		replace: func(ctx context.Context, profileID uuid.UUID, items []profile.AchievementInput) (*profile.Profile, error) {
			p, _, err := s.db.ReplaceSections(ctx, profileID, &db.SectionPayload{Achievements: &items})
			return p, err
		},
	})
}

func registerSection[I any, PI interface {
	*I
	profile.Normalizer
}, R any](mux *http.ServeMux, s *Server, path string, ops sectionOps[I, R]) {
	mux.HandleFunc("GET "+path, func(w http.ResponseWriter, r *http.Request) {
		p, ok := s.requestProfile(w, r)
		if !ok {
			return
		}
		rows, err := ops.list(r.Context(), p.ID)
		if err != nil {
			s.serviceError(w, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, rows)
	})

	mux.HandleFunc("POST "+path, func(w http.ResponseWriter, r *http.Request) {
		p, ok := s.requestProfile(w, r)
		if !ok {
			return
		}
		in, ok := decodeSectionItem[I, PI](s, w, r, ops.section)
		if !ok {
			return
		}
		row, err := ops.create(r.Context(), p.ID, in)
		if err != nil {
			s.serviceError(w, err)
			return
		}
		s.jsonResponse(w, http.StatusCreated, row)
	})

	mux.HandleFunc("POST "+path+"/bulk", func(w http.ResponseWriter, r *http.Request) {
		p, ok := s.requestProfile(w, r)
		if !ok {
			return
		}

		var items []I
		if !s.decodeJSON(w, r, &items) {
			return
		}
		if items == nil {
			items = []I{}
		}
		if err := profile.ValidateSection[I, PI](ops.section, items); err != nil {
			s.serviceError(w, err)
			return
		}

		updated, err := ops.replace(r.Context(), p.ID, items)
		if err != nil {
			s.serviceError(w, err)
			return
		}
		rows, err := ops.list(r.Context(), p.ID)
		if err != nil {
			s.serviceError(w, err)
			return
		}

		s.jsonResponse(w, http.StatusOK, map[string]any{
			"profile": updated,
			"items":   rows,
		})
	})

	mux.HandleFunc("PUT "+path+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := s.requestProfile(w, r)
		if !ok {
			return
		}
		id, ok := s.pathUUID(w, r)
		if !ok {
			return
		}
		in, ok := decodeSectionItem[I, PI](s, w, r, ops.section)
		if !ok {
			return
		}
		row, err := ops.update(r.Context(), p.ID, id, in)
		if err != nil {
			s.serviceError(w, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, row)
	})

	mux.HandleFunc("DELETE "+path+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := s.requestProfile(w, r)
		if !ok {
			return
		}
		id, ok := s.pathUUID(w, r)
		if !ok {
			return
		}
		if err := ops.remove(r.Context(), p.ID, id); err != nil {
			s.serviceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// decodeSectionItem reads and validates one child-collection item.
func decodeSectionItem[I any, PI interface {
	*I
	profile.Normalizer
}](s *Server, w http.ResponseWriter, r *http.Request, section string) (*I, bool) {
	var in I
	if !s.decodeJSON(w, r, &in) {
		return nil, false
	}

	items := []I{in}
	if err := profile.ValidateSection[I, PI](section, items); err != nil {
		s.serviceError(w, err)
		return nil, false
	}
	return &items[0], true
}

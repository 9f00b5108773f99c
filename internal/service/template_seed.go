package service

import (
	_ "embed"
	"fmt"

	"github.com/weibaohui/landingkit/internal/model"
	"github.com/weibaohui/landingkit/internal/pkg/render"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

//go:embed seed/templates.yaml
var starterTemplatesYAML []byte

type seedFile struct {
	Templates []seedTemplate `yaml:"templates"`
}

type seedTemplate struct {
	Name        string        `yaml:"name"`
	Type        string        `yaml:"type"`
	Category    string        `yaml:"category"`
	Description string        `yaml:"description"`
	Thumbnail   string        `yaml:"thumbnail"`
	Sections    []seedSection `yaml:"sections"`
}

type seedSection struct {
	ID             string         `yaml:"id"`
	Component      string         `yaml:"component"`
	Order          int            `yaml:"order"`
	DefaultContent map[string]any `yaml:"defaultContent"`
}

// StarterTemplates 解析内置入门模板（每次调用返回新副本）
func StarterTemplates() ([]model.Template, error) {
	var file seedFile
	if err := yaml.Unmarshal(starterTemplatesYAML, &file); err != nil {
		return nil, fmt.Errorf("parse starter templates: %w", err)
	}

	templates := make([]model.Template, 0, len(file.Templates))
	for _, st := range file.Templates {
		sections := make([]model.Section, 0, len(st.Sections))
		for _, ss := range st.Sections {
			content := ss.DefaultContent
			if content == nil {
				content = map[string]any{}
			}
			sections = append(sections, model.Section{
				ID:             ss.ID,
				Component:      ss.Component,
				Order:          ss.Order,
				DefaultContent: content,
			})
		}
		if err := validateSections(sections); err != nil {
			return nil, fmt.Errorf("starter template %q: %w", st.Name, err)
		}

		category, description, thumbnail := st.Category, st.Description, st.Thumbnail
		templates = append(templates, model.Template{
			Name:        st.Name,
			Type:        st.Type,
			Category:    &category,
			Description: &description,
			Thumbnail:   &thumbnail,
			Sections:    datatypes.NewJSONType(render.WithFieldSchema(sections)),
			IsPublic:    true,
		})
	}
	return templates, nil
}

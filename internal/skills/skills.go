// Package skills exposes the read-only skills catalog with an optional
// on-disk overlay of custom skills.
package skills

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hliang/pai/internal/model"
)

// Builtin returns the static skills catalog.
func Builtin() []model.Skill {
	return []model.Skill{
		{ID: "agents", Name: "Agents", Description: "Dynamic agent composition and management system", Category: "core"},
		{ID: "research", Name: "Research", Description: "Comprehensive research, analysis and content extraction", Category: "core"},
		{ID: "telos", Name: "Telos", Description: "Life OS and project analysis framework", Category: "core"},
		{ID: "redteam", Name: "RedTeam", Description: "Security assessment and red team operations", Category: "security"},
		{ID: "recon", Name: "Recon", Description: "Information gathering and reconnaissance", Category: "security"},
		{ID: "osint", Name: "OSINT", Description: "Open source intelligence", Category: "security"},
		{ID: "browser", Name: "Browser", Description: "Browser automation and control", Category: "tools"},
		{ID: "art", Name: "Art", Description: "Art generation and creative tools", Category: "creative"},
		{ID: "documents", Name: "Documents", Description: "Document processing (PDF, Docx, Xlsx, Pptx)", Category: "tools"},
		{ID: "apify", Name: "Apify", Description: "Web scraping and automation", Category: "tools"},
		{ID: "prompting", Name: "Prompting", Description: "Prompt engineering and optimization", Category: "ai"},
		{ID: "fabric", Name: "Fabric", Description: "AI patterns library (242+ patterns)", Category: "ai"},
		{ID: "evals", Name: "Evals", Description: "Evaluation and testing framework", Category: "ai"},
		{ID: "council", Name: "Council", Description: "Multi-agent decision committee", Category: "ai"},
		{ID: "firstprinciples", Name: "First Principles", Description: "First principles thinking and analysis", Category: "ai"},
		{ID: "becreative", Name: "BeCreative", Description: "Creative brainstorming and ideation", Category: "creative"},
		{ID: "paiupgrade", Name: "PAI Upgrade", Description: "Auto upgrade system for PAI", Category: "system"},
		{ID: "createskill", Name: "CreateSkill", Description: "Tool for creating custom skills", Category: "tools"},
		{ID: "createcli", Name: "CreateCLI", Description: "Tool for creating CLI applications", Category: "tools"},
		{ID: "extractwisdom", Name: "Extract Wisdom", Description: "Extract insights and wisdom from content", Category: "ai"},
	}
}

// overlayManifest is the shape of the optional skills.yaml overlay.
type overlayManifest struct {
	Skills []model.Skill `yaml:"skills"`
}

// LoadOverlay parses a custom-skills manifest. A missing file is not an error;
// it yields no skills.
func LoadOverlay(path string) ([]model.Skill, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read skills overlay: %w", err)
	}

	var manifest overlayManifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parse skills overlay: %w", err)
	}
	return manifest.Skills, nil
}

// All returns the builtin catalog followed by any overlay skills.
func All(overlayPath string) ([]model.Skill, error) {
	catalog := Builtin()
	overlay, err := LoadOverlay(overlayPath)
	if err != nil {
		return nil, err
	}
	return append(catalog, overlay...), nil
}

package handlers

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"skillgap/internal/parser"
)

// RolesHandler lists the job titles available for analysis, derived from the
// job-postings directory the index is built from. One posting file per role
// is the ingestion convention.
type RolesHandler struct {
	jobsDir string
}

func NewRolesHandler(jobsDir string) *RolesHandler {
	return &RolesHandler{jobsDir: jobsDir}
}

func (h *RolesHandler) HandleRoles(c *fiber.Ctx) error {
	files, err := os.ReadDir(h.jobsDir)
	if err != nil {
		// No corpus yet means no known roles, not a failure.
		return c.JSON(fiber.Map{"roles": []string{}})
	}

	seen := make(map[string]bool)
	roles := []string{}
	for _, f := range files {
		if f.IsDir() || !parser.Supported(f.Name()) {
			continue
		}
		role := roleFromFilename(f.Name())
		if role == "" || seen[role] {
			continue
		}
		seen[role] = true
		roles = append(roles, role)
	}
	sort.Strings(roles)

	return c.JSON(fiber.Map{"roles": roles})
}

func roleFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return strings.Join(strings.Fields(base), " ")
}

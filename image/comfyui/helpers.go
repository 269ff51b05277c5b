package comfyui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"presetbird/logger"
	"presetbird/settings"
)

func WorkflowExists(config settings.ComfyUiConfig, workflow string) bool {
	if workflow == "" || strings.ContainsAny(workflow, `/\`) {
		return false
	}
	_, err := os.Stat(config.WorkflowPath(workflow))
	return err == nil
}

// GetWorkflows lists the workflow names available in the workflow directory.
func GetWorkflows(config settings.ComfyUiConfig) []string {
	files, err := filepath.Glob(filepath.Join(config.WorkflowDir, "*.json"))
	if err != nil {
		logger.Error("Failed to glob for workflow files", "error", err)
		return nil
	}

	workflows := make([]string, 0, len(files))
	for _, file := range files {
		workflows = append(workflows, strings.TrimSuffix(filepath.Base(file), ".json"))
	}
	sort.Strings(workflows)
	return workflows
}

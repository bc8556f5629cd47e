// cmd/tools/registry/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"sonnimal/internal/common/validation"
	"sonnimal/pkg/registry"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", "", "Path to registry file (default: built-in)")

	checkCmd := flag.NewFlagSet("check-input", flag.ExitOnError)
	checkPath := checkCmd.String("path", "", "Path to registry file (default: built-in)")
	taskType := checkCmd.String("taskType", "analyze-reviews", "Task type whose input schema to use")
	input := checkCmd.String("input", "", `Job variables as JSON, e.g. {"url":"https://m.place.naver.com/restaurant/1243837618"}`)

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg := mustLoad(*validatePath)
		if err := reg.Validate(); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	case "check-input":
		checkCmd.Parse(os.Args[2:])
		if *input == "" {
			fmt.Println("Error: -input is required for check-input.")
			checkCmd.Usage()
			os.Exit(1)
		}
		if err := checkInput(mustLoad(*checkPath), *taskType, *input); err != nil {
			fmt.Printf("Input rejected: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Input accepted.")

	default:
		help()
	}
}

func mustLoad(path string) *registry.ActivityRegistry {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		fmt.Printf("Error loading registry: %v\n", err)
		os.Exit(1)
	}
	return reg
}

func checkInput(reg *registry.ActivityRegistry, taskType, input string) error {
	activity, ok := reg.FindByTaskType(taskType)
	if !ok {
		return fmt.Errorf("no activity registered for task type %s", taskType)
	}

	var vars map[string]interface{}
	if err := json.Unmarshal([]byte(input), &vars); err != nil {
		return fmt.Errorf("input is not a JSON object: %w", err)
	}

	result, err := validation.ValidateInput(vars, activity.InputSchema)
	if err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("%s", strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}

func help() {
	fmt.Println(`
Usage: registry <command> [flags]

Commands:
  validate     Validate the activity registry
  check-input  Validate job variables against a task's input schema
  help         Show this help message

Examples:
  registry validate
  registry validate -path configs/activity-registry.json
  registry check-input -input '{"url":"https://m.place.naver.com/restaurant/1243837618"}'`)
}

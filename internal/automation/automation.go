package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/cellgrid/internal/experiment"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Exactly one of Input, Preset or Layout names the
// starting grid.
type ScenarioStep struct {
	Variant        string `yaml:"variant"`
	Input          string `yaml:"input"`
	Preset         string `yaml:"preset"`
	Layout         string `yaml:"layout"`
	Generations    int    `yaml:"generations"`
	MaxGenerations int    `yaml:"max_generations"`
	Expect         *int   `yaml:"expect"`
	SaveAs         string `yaml:"save_as"`
}

// Resolver turns a step's input, preset or inline layout into lines.
type Resolver func(step ScenarioStep, family string) ([]string, error)

// StepResult pairs a step with its outcome.
type StepResult struct {
	Step    ScenarioStep
	Summary *experiment.Summary
	Final   string
}

// Mismatch reports whether the step declared an expected count that the
// run did not reach.
func (r StepResult) Mismatch() bool {
	return r.Step.Expect != nil && *r.Step.Expect != r.Summary.Count
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	for i, step := range scenario.Steps {
		sources := 0
		for _, s := range []string{step.Input, step.Preset, step.Layout} {
			if s != "" {
				sources++
			}
		}
		if step.Variant == "" {
			return nil, fmt.Errorf("step %d: missing variant", i+1)
		}
		if sources > 1 {
			return nil, fmt.Errorf("step %d: input, preset and layout are exclusive", i+1)
		}
	}
	return &scenario, nil
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the results gathered so far. Progress lines go to out.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, resolve Resolver, opts experiment.Options, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Fprintf(out, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Variant)

		family, err := registry.Family(step.Variant)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		lines, err := resolve(step, family)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		stepOpts := opts
		if step.Generations > 0 {
			stepOpts.Generations = step.Generations
		}
		if step.MaxGenerations > 0 {
			stepOpts.MaxGenerations = step.MaxGenerations
		}

		exp := experiment.New(experiment.Config{Variant: step.Variant, Lines: lines, Options: stepOpts})
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		summary, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Summary: summary, Final: exp.Runner().Render()})
	}

	return results, nil
}

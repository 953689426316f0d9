// scrolly plays scroll-driven 3D stories described in YAML.
//
// Controls:
//
//	Wheel / drag   - Scroll the story
//	Progress bar   - Click to seek
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/phanxgames/scrolly"
	"github.com/spf13/cobra"
)

const appName = "scrolly"

var (
	debugMode  bool
	showHUD    bool
	resume     bool
	scriptPath string

	sweepFrom float64
	sweepTo   float64
	sweepStep float64
)

func main() {
	cmd := &cobra.Command{
		Use:   "scrolly",
		Short: "Scroll-driven 3D storytelling",
	}

	runCmd := &cobra.Command{
		Use:   "run <story.yaml>",
		Short: "Open a story in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	runCmd.Flags().BoolVar(&debugMode, "debug", false, "Log per-frame timings to stderr")
	runCmd.Flags().BoolVar(&showHUD, "hud", false, "Show the FPS/percent overlay")
	runCmd.Flags().BoolVar(&resume, "resume", false, "Save and restore the reading position")
	runCmd.Flags().StringVar(&scriptPath, "script", "", "Path to a JSON input script")

	sweepCmd := &cobra.Command{
		Use:   "sweep <story.yaml>",
		Short: "Step a story through a percentage range without a window",
		Long: `Step a story through a percentage range without a window.

Each step seeks the scroller, advances one 60 fps frame, and prints the
character pose, camera position, and any scene events fired.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			story, err := loadStory(args[0])
			if err != nil {
				return err
			}
			return sweep(cmd.OutOrStdout(), story, sweepFrom, sweepTo, sweepStep)
		},
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "Start percentage")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 100, "End percentage")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 5, "Percentage step")

	infoCmd := &cobra.Command{
		Use:   "info <story.yaml>",
		Short: "Display story information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			story, err := loadStory(args[0])
			if err != nil {
				return err
			}
			return info(cmd.OutOrStdout(), story)
		},
	}

	cmd.AddCommand(runCmd, sweepCmd, infoCmd)

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

func loadStory(path string) (*scrolly.Story, error) {
	cfg, err := scrolly.LoadStory(path)
	if err != nil {
		return nil, err
	}
	story, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if story.Title == "" {
		story.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return story, nil
}

func run(path string) error {
	story, err := loadStory(path)
	if err != nil {
		return err
	}
	exp := story.NewExperience(nil)

	if resume {
		store, err := scrolly.OpenResumeStore(appName, story.Title)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: resume disabled: %v\n", err)
		} else {
			exp.SetResumeStore(store)
		}
	}

	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := scrolly.LoadTestScript(data)
		if err != nil {
			return err
		}
		exp.SetTestRunner(runner)
	}

	return scrolly.Run(exp, scrolly.RunConfig{
		Title:   story.Title,
		Width:   int(story.Width),
		Height:  int(story.Height),
		Debug:   debugMode,
		ShowHUD: showHUD,
	})
}

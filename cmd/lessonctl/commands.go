package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tylervsnyc/chess-learning-tree/internal/config"
	"github.com/tylervsnyc/chess-learning-tree/internal/dao"
	"github.com/tylervsnyc/chess-learning-tree/internal/db"
	"github.com/tylervsnyc/chess-learning-tree/internal/engine"
	"github.com/tylervsnyc/chess-learning-tree/internal/logger"
	"github.com/tylervsnyc/chess-learning-tree/pkg/lessons"
	"gopkg.in/yaml.v2"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lessonctl",
		Short:        "Inspect and publish the chess lesson catalog",
		SilenceUsage: true,
	}
	root.AddCommand(newValidateCmd(), newExportCmd(), newSeedCmd(), newVerifyCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Replay every puzzle against the chess rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := lessons.Default()
			if err := lessons.ValidateCatalog(c); err != nil {
				return err
			}
			total := 0
			for _, set := range c.Lessons() {
				total += len(set.Puzzles)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d lessons, %d puzzles ok\n", len(c.Lessons()), total)
			return nil
		},
	}
}

func export(w io.Writer, format string, sets []lessons.LessonPuzzleSet) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sets)
	case "yaml":
		b, err := yaml.Marshal(sets)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unknown format %q, want json or yaml", format)
	}
}

func newExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the catalog as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return export(cmd.OutOrStdout(), format, lessons.Default().Lessons())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func seed(ctx context.Context, repo dao.LessonRepository, sets []lessons.LessonPuzzleSet) error {
	for _, set := range sets {
		if err := repo.UpsertLessonSet(ctx, set); err != nil {
			return err
		}
	}
	return nil
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Upsert every lesson into MongoDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitConfig()
			if err != nil {
				return err
			}
			if cfg.Database.Address == "" {
				return fmt.Errorf("MONGO_ADDRESS is not set")
			}
			log, err := logger.New(cfg.LogMode)
			if err != nil {
				return err
			}
			defer log.Sync()

			dbClient, err := db.NewDbClient(cfg)
			if err != nil {
				return err
			}
			defer dbClient.Close()

			sets := lessons.Default().Lessons()
			if err := seed(cmd.Context(), dao.NewLessonRepository(dbClient), sets); err != nil {
				return err
			}
			log.Info("seeded lessons", "count", len(sets), "collection", cfg.Database.Collection)
			return nil
		},
	}
}

func verify(w io.Writer, v *engine.Verifier, sets []lessons.LessonPuzzleSet) (int, error) {
	failed := 0
	for _, set := range sets {
		reports, err := v.VerifyLesson(set)
		if err != nil {
			return failed, err
		}
		for _, r := range reports {
			status := "ok"
			if !r.OK {
				status = "MISMATCH"
				failed++
			}
			fmt.Fprintf(w, "%s\t%s\t%s\texpected=%s engine=%v\n", set.LessonID, r.PuzzleID, status, r.Expected, r.EngineMoves)
		}
	}
	return failed, nil
}

func newVerifyCmd() *cobra.Command {
	var lessonID string
	var depth int
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check puzzle solutions with a UCI engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitConfig()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.LogMode)
			if err != nil {
				return err
			}
			defer log.Sync()

			sets := lessons.Default().Lessons()
			if lessonID != "" {
				info, ok := lessons.GetLessonInfo(lessonID)
				if !ok {
					return fmt.Errorf("unknown lesson %s", lessonID)
				}
				sets = []lessons.LessonPuzzleSet{{
					LessonID:   lessonID,
					LessonName: info.Name,
					Puzzles:    lessons.PuzzlesForLesson(lessonID),
				}}
			}
			if depth <= 0 {
				depth = cfg.Stockfish.Depth
			}

			e, err := engine.NewEngine(cfg.Stockfish.Path, cfg.Stockfish.Args...)
			if err != nil {
				return err
			}
			defer e.Close()

			failed, err := verify(cmd.OutOrStdout(), engine.NewVerifier(e, depth, log), sets)
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d puzzles disagree with the engine", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&lessonID, "lesson", "l", "", "verify a single lesson")
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "search depth (default STOCKFISH_DEPTH)")
	return cmd
}

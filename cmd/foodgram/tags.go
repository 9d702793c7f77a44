package main

import (
	"errors"
	"fmt"

	"foodgram/internal/api"
	"foodgram/internal/model"
	"foodgram/internal/store"

	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage recipe tags",
	}

	var req api.TagRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := api.NewValidator().Validate(&req); err != nil {
				return err
			}
			cfg, err := setup()
			if err != nil {
				return err
			}
			db, err := newPgxPool(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("DB 連線失敗: %w", err)
			}
			defer db.Close()

			tag := &model.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug}
			err = createTag(cmd.Context(), db, tag)
			if errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("a tag with slug %q already exists", tag.Slug)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created tag %d (%s)\n", tag.ID, tag.Slug)
			return nil
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "tag name")
	create.Flags().StringVar(&req.Color, "color", "", "HEX color, e.g. #49B64E")
	create.Flags().StringVar(&req.Slug, "slug", "", "unique slug")

	cmd.AddCommand(create)
	return cmd
}

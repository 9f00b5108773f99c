package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/weibaohui/landingkit/config"
	"github.com/weibaohui/landingkit/internal/pkg/database"
	"github.com/weibaohui/landingkit/internal/pkg/render"
	"github.com/weibaohui/landingkit/internal/repository"
	"github.com/weibaohui/landingkit/internal/service"
)

type rootOptions struct {
	dbType string
	dsn    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cfg := config.GetConfig()

	rootCmd := &cobra.Command{
		Use:           "landingctl",
		Short:         "landingkit 管理工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.dbType, "db-type", cfg.Database.Type, "数据库类型 (sqlite, mysql)")
	rootCmd.PersistentFlags().StringVar(&opts.dsn, "dsn", cfg.Database.DSN, "数据库连接串")

	rootCmd.AddCommand(newSeedCmd(opts), newRenderCmd(opts), newComponentsCmd())
	return rootCmd
}

func (o *rootOptions) openDB() (*gorm.DB, error) {
	db, err := database.InitDB(o.dbType, o.dsn)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	return db, nil
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "清空模板并导入内置入门模板",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openDB()
			if err != nil {
				return err
			}
			templates := service.NewTemplateService(repository.NewTemplateRepository(db))
			result, err := templates.Seed(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range result.Templates {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d sections\n", t.ID, t.Name, len(t.Sections))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d templates\n", result.Count)
			return nil
		},
	}
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var draft bool
	cmd := &cobra.Command{
		Use:   "render <slug>",
		Short: "输出落地页渲染结果 (JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openDB()
			if err != nil {
				return err
			}
			pages := service.NewPageService(repository.NewProjectRepository(db), repository.NewProductRepository(db), nil)

			var page *service.PageDTO
			if draft {
				page, err = pages.Draft(cmd.Context(), args[0])
			} else {
				page, err = pages.Page(cmd.Context(), args[0])
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", args[0], err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		},
	}
	cmd.Flags().BoolVar(&draft, "draft", false, "渲染未发布的项目")
	return cmd
}

func newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "列出可渲染的区块组件",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := render.DefaultRegistry()
			for _, name := range registry.Names() {
				c, _ := registry.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Name, c.Description)
			}
			return nil
		},
	}
}

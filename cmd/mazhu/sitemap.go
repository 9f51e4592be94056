package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mazhu/website/content"
	"github.com/mazhu/website/handlers"
	"github.com/mazhu/website/pkg/i18n"
	"github.com/mazhu/website/pkg/sitemap"
	"github.com/mazhu/website/views"
	"github.com/mazhu/website/web"
)

func newSitemapCmd(root *rootOptions) *cobra.Command {
	var baseURL, output string

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Write sitemap.xml for static hosting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = cfg.BaseURL
			}

			inst, err := i18n.New(
				i18n.WithDefaultLanguage(cfg.DefaultLanguage),
				i18n.WithJSONFiles(web.Static(), web.LangDir),
			)
			if err != nil {
				return err
			}
			c, err := content.Load(content.FS())
			if err != nil {
				return err
			}
			site := handlers.NewSite(views.MustNew(), c, inst, baseURL)

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			return sitemap.Write(w, site.BaseURL, c.SitemapEntries(), handlers.SitemapOptions(site))
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "public origin, defaults to BASE_URL")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}

package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mazhu/website/config"
	"github.com/mazhu/website/content"
	"github.com/mazhu/website/pkg/i18n"
	"github.com/mazhu/website/pkg/logger"
	"github.com/mazhu/website/server"
)

func newI18nCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "i18n",
		Short: "Translation tools",
	}
	cmd.AddCommand(newI18nCheckCmd(root))
	return cmd
}

func newI18nCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify every rendered data-i18n key is translated in every language",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			// Rendering needs no shared backends.
			cfg.StatsBackend = config.BackendMemory
			cfg.Redis.URL = ""

			srv, err := server.New(cmd.Context(), cfg, logger.NewNope())
			if err != nil {
				return err
			}

			keys, err := renderedKeys(srv)
			if err != nil {
				return err
			}
			inst := srv.I18n()
			missing := inst.CheckCoverage(withDefined(inst, keys))

			out := cmd.OutOrStdout()
			for _, m := range missing {
				fmt.Fprintf(out, "missing %s\n", m)
			}
			if err := i18n.MissingError(missing); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d keys translated in %v\n", len(keys), inst.Languages())
			return nil
		},
	}
}

// renderedKeys renders every page in every language and collects the
// data-i18n keys found, plus the menu catalog keys.
func renderedKeys(srv *server.Server) ([]string, error) {
	h := srv.Handler()
	c := srv.Site().Content

	paths := []string{"/admin"}
	for _, p := range content.Navigation {
		paths = append(paths, p.Path())
	}
	for _, s := range c.Menu.Sections() {
		paths = append(paths, "/menu/sections/"+s.ID)
	}
	for _, p := range c.News.List() {
		paths = append(paths, p.Path())
	}
	paths = append(paths, "/this-page-does-not-exist")

	seen := make(map[string]struct{})
	for _, lang := range srv.I18n().Languages() {
		for _, p := range paths {
			req := httptest.NewRequest(http.MethodGet, p+"?lang="+lang, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			keys, err := i18n.ExtractKeys(rec.Body)
			if err != nil {
				return nil, fmt.Errorf("%s (%s): %w", p, lang, err)
			}
			for _, k := range keys {
				seen[k] = struct{}{}
			}
		}
	}
	for _, k := range c.Menu.Keys() {
		seen[k] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// withDefined adds every key defined in any language file, so keys
// present in one file but not another are reported too.
func withDefined(inst *i18n.I18n, keys []string) []string {
	all := slices.Clone(keys)
	for _, lang := range inst.Languages() {
		all = append(all, inst.Keys(lang)...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coolbeans/rulehub/pkg/config"
	"github.com/coolbeans/rulehub/pkg/library"
	"github.com/coolbeans/rulehub/pkg/manual"
	"github.com/coolbeans/rulehub/pkg/markup"
	"github.com/coolbeans/rulehub/pkg/notes"
	"github.com/coolbeans/rulehub/pkg/pdftext"
	"github.com/coolbeans/rulehub/pkg/remote"
	"github.com/coolbeans/rulehub/pkg/render"
	"github.com/coolbeans/rulehub/pkg/search"
	"github.com/coolbeans/rulehub/pkg/watch"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "rulehub",
		Short: "Competition rulebook companion",
		Long: `Rulehub keeps competition game manuals at your fingertips.

It downloads manual documents, renders the embedded rule markup
(tables, callouts, violation notes, images, links, cross-references),
searches and ranks rules, and keeps local favorites and notes.`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("program", "", "competition program (V5RC, VIQRC, VEXU, ADC)")
	rootCmd.PersistentFlags().String("season", "", "season, e.g. 2025-2026")
	rootCmd.PersistentFlags().String("data-dir", "", "data directory (default ~/.rulehub)")
	_ = viper.BindPFlag("program", rootCmd.PersistentFlags().Lookup("program"))
	_ = viper.BindPFlag("season", rootCmd.PersistentFlags().Lookup("season"))
	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(groupsCmd())
	rootCmd.AddCommand(ruleCmd())
	rootCmd.AddCommand(favCmd())
	rootCmd.AddCommand(noteCmd())
	rootCmd.AddCommand(pdfCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(libraryCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetConfigName(".rulehub")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("RULEHUB")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig() // Missing config file is fine.
}

// currentManualID derives the library ID for the configured program and
// season, e.g. "v5rc-2025-2026".
func currentManualID(cfg config.Config) string {
	return fmt.Sprintf("%s-%s", strings.ToLower(cfg.Program), cfg.Season)
}

func openLibrary(cfg config.Config) (*library.Library, error) {
	lib, err := library.Open(cfg.LibraryDir())
	if err != nil {
		return nil, fmt.Errorf("no manual library at %s (run 'rulehub fetch' first): %w", cfg.LibraryDir(), err)
	}
	return lib, nil
}

func loadCurrentManual(cfg config.Config) (*manual.GameManual, error) {
	lib, err := openLibrary(cfg)
	if err != nil {
		return nil, err
	}
	return lib.GetManual(currentManualID(cfg))
}

// newParser wires rule-code resolution against the loaded manual so
// cross-references in rule text become navigable runs.
func newParser(m *manual.GameManual, cfg config.Config) *markup.Parser {
	resolver := markup.ResolverFunc(func(code string) (string, bool) {
		rule, ok := manual.ResolveReference(code, m)
		if !ok {
			return "", false
		}
		return rule.ID, true
	})
	return markup.NewParser(resolver, cfg.LinkDomain)
}

// visibleGroups applies the program filter and group ordering for
// browse-style output.
func visibleGroups(m *manual.GameManual, cfg config.Config) []*manual.RuleGroup {
	ordering, err := config.LoadOrdering(cfg.OrderingFile())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
	}
	groups := search.FilterGroupsByProgram(m.Groups, manual.Program(cfg.Program), ordering.Denylist)
	return search.OrderGroups(groups, ordering.Canonical)
}

func openNotes(ctx context.Context, cfg config.Config) (*notes.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return notes.Open(ctx, cfg.NotesDB())
}

func fetchCmd() *cobra.Command {
	var (
		manualURL string
		pdfURL    string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the game manual into the local library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			url := manualURL
			if url == "" {
				url = cfg.ManualURL
			}
			if url == "" {
				return fmt.Errorf("no manual URL: pass --url or set manual_url in .rulehub.yaml")
			}

			cache, err := remote.NewDiskCache(cfg.CacheDir(), cfg.CacheTTL)
			if err != nil {
				return err
			}
			client := remote.NewClient(0, cache)

			fmt.Printf("Fetching manual from %s...\n", url)
			m, raw, err := client.FetchManual(cmd.Context(), url)
			if err != nil {
				return err
			}

			lib, err := library.Init(cfg.LibraryDir())
			if err != nil {
				return err
			}
			entry, err := lib.AddManual(m, raw, library.AddOptions{SourceURL: url, Force: force})
			if err != nil {
				return err
			}

			stats := m.Statistics()
			fmt.Printf("Stored %s (%s %s)\n", entry.ID, m.Program, m.Season)
			fmt.Printf("  Groups: %d\n", stats.Groups)
			fmt.Printf("  Rules:  %d\n", stats.Rules)

			if pdfURL != "" {
				fmt.Printf("Downloading rulebook PDF from %s...\n", pdfURL)
				tmp := filepath.Join(os.TempDir(), fmt.Sprintf("rulehub-%s.pdf", entry.ID))
				if err := client.Download(cmd.Context(), pdfURL, tmp); err != nil {
					return err
				}
				defer os.Remove(tmp)
				if err := lib.AttachPDF(entry.ID, tmp); err != nil {
					return err
				}
				fmt.Println("Attached rulebook PDF")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manualURL, "url", "", "manual document URL")
	cmd.Flags().StringVar(&pdfURL, "pdf", "", "rulebook PDF URL to store alongside the manual")
	cmd.Flags().BoolVar(&force, "force", false, "replace an already-stored manual")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Render the full text of a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			m, err := loadCurrentManual(cfg)
			if err != nil {
				return err
			}

			rule, ok := resolveRuleArg(m, args[0])
			if !ok {
				return fmt.Errorf("no rule %s in %s", normalizeCode(args[0]), m.ID())
			}

			parser := newParser(m, cfg)
			renderer := render.NewRenderer(cfg.Width)

			fmt.Printf("%s %s\n", rule.Code, rule.Title)
			if group := m.GroupOf(rule.ID); group != nil {
				fmt.Printf("%s\n", group.Name)
			}
			fmt.Println()
			fmt.Println(renderer.Render(parser.Parse(rule.BodyText(), "")))

			for _, url := range rule.ImageURLs {
				fmt.Println(renderer.RenderSegment(markup.Image{URL: url}))
			}
			if len(rule.RelatedRuleIDs) > 0 {
				fmt.Printf("\nRelated: %s\n", strings.Join(relatedCodes(m, rule), ", "))
			}
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search rules by code, title, category, and body text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			m, err := loadCurrentManual(cfg)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			ordering, _ := config.LoadOrdering(cfg.OrderingFile())
			groups := search.FilterGroupsByProgram(m.Groups, manual.Program(cfg.Program), ordering.Denylist)
			ranked := search.RankAndFilter(groups, query)

			if len(ranked) == 0 {
				fmt.Printf("No rules match %q\n", query)
				return nil
			}

			parser := newParser(m, cfg)
			renderer := render.NewRenderer(cfg.Width)
			total := 0
			for _, group := range ranked {
				fmt.Printf("%s\n", group.Name)
				for _, rule := range group.Rules {
					desc := renderer.Render(parser.Parse(rule.Description, query))
					fmt.Printf("  %s %s\n      %s\n", rule.Code, rule.Title, strings.ReplaceAll(desc, "\n", "\n      "))
					total++
				}
			}
			fmt.Printf("\n%d matching rule(s)\n", total)
			return nil
		},
	}
}

func groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List visible rule groups in canonical order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			m, err := loadCurrentManual(cfg)
			if err != nil {
				return err
			}

			for _, group := range visibleGroups(m, cfg) {
				fmt.Printf("%-28s %3d rule(s)\n", group.Name, len(group.Rules))
			}
			return nil
		},
	}
}

func ruleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rule <code>",
		Short: "Show a rule summary with favorite and note state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			m, err := loadCurrentManual(cfg)
			if err != nil {
				return err
			}

			rule, ok := resolveRuleArg(m, args[0])
			if !ok {
				return fmt.Errorf("no rule %s in %s", normalizeCode(args[0]), m.ID())
			}

			fmt.Printf("Code:        %s\n", rule.Code)
			fmt.Printf("Title:       %s\n", rule.Title)
			fmt.Printf("Category:    %s\n", rule.Category)
			if group := m.GroupOf(rule.ID); group != nil {
				fmt.Printf("Group:       %s\n", group.Name)
			}
			fmt.Printf("Description: %s\n", markup.Strip(rule.Description))
			if len(rule.RelatedRuleIDs) > 0 {
				fmt.Printf("Related:     %s\n", strings.Join(relatedCodes(m, rule), ", "))
			}

			store, err := openNotes(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			program := manual.Program(cfg.Program)
			fav, err := store.IsFavorite(cmd.Context(), program, cfg.Season, rule.ID)
			if err != nil {
				return err
			}
			if fav {
				fmt.Println("Favorite:    ★")
			}
			if body, ok, err := store.GetNote(cmd.Context(), program, cfg.Season, rule.ID); err != nil {
				return err
			} else if ok {
				fmt.Printf("Note:        %s\n", body)
			}
			return nil
		},
	}
}

func favCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favorite rules",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <code>",
		Short: "Star a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			rule, store, err := ruleAndStore(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.AddFavorite(cmd.Context(), manual.Program(cfg.Program), cfg.Season, rule.ID); err != nil {
				return err
			}
			fmt.Printf("Starred %s\n", rule.Code)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <code>",
		Short: "Unstar a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			rule, store, err := ruleAndStore(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.RemoveFavorite(cmd.Context(), manual.Program(cfg.Program), cfg.Season, rule.ID); err != nil {
				return err
			}
			fmt.Printf("Unstarred %s\n", rule.Code)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List starred rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			m, err := loadCurrentManual(cfg)
			if err != nil {
				return err
			}
			store, err := openNotes(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			favorites, err := store.ListFavorites(cmd.Context(), manual.Program(cfg.Program), cfg.Season)
			if err != nil {
				return err
			}
			if len(favorites) == 0 {
				fmt.Println("No favorites")
				return nil
			}
			for _, fav := range favorites {
				if rule := m.RuleByID(fav.RuleID); rule != nil {
					fmt.Printf("%s %s\n", rule.Code, rule.Title)
				} else {
					fmt.Printf("%s (not in current manual)\n", fav.RuleID)
				}
			}
			return nil
		},
	})

	return cmd
}

func noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage per-rule notes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <code> <text>...",
		Short: "Write the note for a rule",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			rule, store, err := ruleAndStore(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			defer store.Close()
			body := strings.Join(args[1:], " ")
			if err := store.SetNote(cmd.Context(), manual.Program(cfg.Program), cfg.Season, rule.ID, body); err != nil {
				return err
			}
			fmt.Printf("Noted %s\n", rule.Code)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <code>",
		Short: "Print the note for a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			rule, store, err := ruleAndStore(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			defer store.Close()
			body, ok, err := store.GetNote(cmd.Context(), manual.Program(cfg.Program), cfg.Season, rule.ID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no note for %s", rule.Code)
			}
			fmt.Println(body)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <code>",
		Short: "Delete the note for a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			rule, store, err := ruleAndStore(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.DeleteNote(cmd.Context(), manual.Program(cfg.Program), cfg.Season, rule.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted note for %s\n", rule.Code)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			m, err := loadCurrentManual(cfg)
			if err != nil {
				return err
			}
			store, err := openNotes(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			all, err := store.ListNotes(cmd.Context(), manual.Program(cfg.Program), cfg.Season)
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println("No notes")
				return nil
			}
			for _, n := range all {
				label := n.RuleID
				if rule := m.RuleByID(n.RuleID); rule != nil {
					label = rule.Code
				}
				fmt.Printf("%s  %s\n", label, n.Body)
			}
			return nil
		},
	})

	return cmd
}

func pdfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Manage the stored rulebook PDF",
	}

	var pdfURL string
	fetchSub := &cobra.Command{
		Use:   "fetch",
		Short: "Download and attach the rulebook PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if pdfURL == "" {
				return fmt.Errorf("no PDF URL: pass --url")
			}
			lib, err := openLibrary(cfg)
			if err != nil {
				return err
			}
			id := currentManualID(cfg)

			client := remote.NewClient(0, nil)
			tmp := filepath.Join(os.TempDir(), fmt.Sprintf("rulehub-%s.pdf", id))
			fmt.Printf("Downloading %s...\n", pdfURL)
			if err := client.Download(cmd.Context(), pdfURL, tmp); err != nil {
				return err
			}
			defer os.Remove(tmp)
			if err := lib.AttachPDF(id, tmp); err != nil {
				return err
			}
			fmt.Printf("Attached rulebook PDF to %s\n", id)
			return nil
		},
	}
	fetchSub.Flags().StringVar(&pdfURL, "url", "", "rulebook PDF URL")
	cmd.AddCommand(fetchSub)

	var raw bool
	textSub := &cobra.Command{
		Use:   "text",
		Short: "Extract plain text from the stored rulebook PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			lib, err := openLibrary(cfg)
			if err != nil {
				return err
			}
			path, err := lib.PDFPath(currentManualID(cfg))
			if err != nil {
				return err
			}
			text, err := pdftext.ExtractText(path)
			if err != nil {
				return err
			}
			if !raw {
				text = pdftext.Normalize(text)
			}
			fmt.Println(text)
			return nil
		},
	}
	textSub.Flags().BoolVar(&raw, "raw", false, "skip whitespace normalization")
	cmd.AddCommand(textSub)

	return cmd
}

func watchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the stored manual document and report reloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			lib, err := openLibrary(cfg)
			if err != nil {
				return err
			}
			path, err := lib.DocumentPath(currentManualID(cfg))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Printf("Watching %s (ctrl-c to stop)\n", path)
			err = watch.Watch(ctx, path, debounce, func(r watch.Reload) {
				if r.Err != nil {
					fmt.Fprintf(os.Stderr, "reload failed: %v\n", r.Err)
					return
				}
				stats := r.Manual.Statistics()
				fmt.Printf("Reloaded %s: %d groups, %d rules\n", r.Manual.ID(), stats.Groups, stats.Rules)
			})
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "settle window before reloading")
	return cmd
}

func libraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the local manual library",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored manuals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			lib, err := openLibrary(cfg)
			if err != nil {
				return err
			}
			entries := lib.List()
			if len(entries) == 0 {
				fmt.Println("Library is empty")
				return nil
			}
			for _, entry := range entries {
				marker := " "
				if entry.Status == library.StatusFailed {
					marker = "!"
				}
				rules := 0
				if entry.Stats != nil {
					rules = entry.Stats.Rules
				}
				fmt.Printf("%s %-20s %-8s %-10s %4d rule(s)\n", marker, entry.ID, entry.Program, entry.Season, rules)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show aggregate library statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			lib, err := openLibrary(cfg)
			if err != nil {
				return err
			}
			stats := lib.Stats()
			fmt.Printf("Manuals: %d\n", stats.TotalManuals)
			fmt.Printf("Rules:   %d\n", stats.TotalRules)
			for program, n := range stats.ByProgram {
				fmt.Printf("  %-8s %d\n", program, n)
			}
			for status, n := range stats.ByStatus {
				fmt.Printf("  %-8s %d\n", status, n)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a stored manual",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			lib, err := openLibrary(cfg)
			if err != nil {
				return err
			}
			if err := lib.Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rulehub version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rulehub %s\n", version)
		},
	}
}

// normalizeCode accepts rule codes with or without angle brackets.
func normalizeCode(arg string) string {
	code := strings.TrimSpace(arg)
	if !strings.HasPrefix(code, "<") {
		code = "<" + strings.TrimSuffix(strings.TrimPrefix(code, "<"), ">") + ">"
	}
	return code
}

// resolveRuleArg resolves a user-typed code, retrying with the stem
// uppercased so "sg3" finds "<SG3>". A trailing sub-part letter stays as
// typed: "r3d" retries as "<R3d>", not "<R3D>".
func resolveRuleArg(m *manual.GameManual, arg string) (*manual.Rule, bool) {
	code := normalizeCode(arg)
	if rule, ok := manual.ResolveReference(code, m); ok {
		return rule, true
	}
	return manual.ResolveReference(upperStem(code), m)
}

// upperStem uppercases a bracketed code's letters-digits stem, leaving a
// lowercase sub-part letter after the digits untouched.
func upperStem(code string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(code, "<"), ">")
	if n := len(inner); n > 1 {
		last, prev := inner[n-1], inner[n-2]
		if last >= 'a' && last <= 'z' && prev >= '0' && prev <= '9' {
			return "<" + strings.ToUpper(inner[:n-1]) + string(last) + ">"
		}
	}
	return "<" + strings.ToUpper(inner) + ">"
}

// ruleAndStore resolves a rule code and opens the notes store, the common
// setup of the fav and note subcommands.
func ruleAndStore(ctx context.Context, cfg config.Config, codeArg string) (*manual.Rule, *notes.Store, error) {
	m, err := loadCurrentManual(cfg)
	if err != nil {
		return nil, nil, err
	}
	rule, ok := resolveRuleArg(m, codeArg)
	if !ok {
		return nil, nil, fmt.Errorf("no rule %s in %s", normalizeCode(codeArg), m.ID())
	}
	store, err := openNotes(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return rule, store, nil
}

func relatedCodes(m *manual.GameManual, rule *manual.Rule) []string {
	codes := make([]string, 0, len(rule.RelatedRuleIDs))
	for _, id := range rule.RelatedRuleIDs {
		if related := m.RuleByID(id); related != nil {
			codes = append(codes, related.Code)
		} else {
			codes = append(codes, id)
		}
	}
	return codes
}

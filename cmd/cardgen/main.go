// Command cardgen renders the card, sigil or trait table to PNG files.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/youruser/cardgen/internal/app"
	"github.com/youruser/cardgen/internal/cards"
	"github.com/youruser/cardgen/internal/config"
	"github.com/youruser/cardgen/internal/export"
)

func main() {
	cfgPath := flag.String("config", envOr("CARDGEN_CONFIG", "config.yaml"), "path to config.yaml")
	kindFlag := flag.String("kind", "", "what to export: cards, sigils or traits (prompts when empty)")
	only := flag.String("only", "", `comma-separated names to export; "A:B" selects rows A through B`)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Paths.LogFile != "" {
		f, err := os.OpenFile(cfg.Paths.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	in := bufio.NewReader(os.Stdin)
	kindText := *kindFlag
	if kindText == "" {
		kindText = prompt(in, "Export cards, sigils or traits? [c/s/t]: ")
	}
	kind, err := export.ParseKind(kindText)
	if err != nil {
		log.Fatal(err)
	}
	list := *only
	if *kindFlag == "" && list == "" {
		list = prompt(in, "Names to export (empty for all): ")
	}

	table := map[export.Kind]string{
		export.KindCards:  cfg.Paths.CardsFile,
		export.KindSigils: cfg.Paths.SigilsFile,
		export.KindTraits: cfg.Paths.TraitsFile,
	}[kind]
	records, err := cards.LoadRecords(table)
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := export.New(cfg, a.Assets, a.Cards).Run(ctx, kind, records, cards.ParseSelection(list))
	fmt.Println(sum)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	if len(sum.Failed) > 0 {
		os.Exit(2)
	}
}

func prompt(in *bufio.Reader, msg string) string {
	fmt.Print(msg)
	s, _ := in.ReadString('\n')
	return strings.TrimSpace(s)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

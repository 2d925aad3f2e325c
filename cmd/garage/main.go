// Command garage is the deck-builder's composition root: it wires the
// catalog store, the deck database, and the deck state store together
// behind a small CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/gearbox-games/garage/internal/card"
	"github.com/gearbox-games/garage/internal/catalog"
	"github.com/gearbox-games/garage/internal/config"
	"github.com/gearbox-games/garage/internal/deck"
	"github.com/gearbox-games/garage/internal/logging"
	"github.com/gearbox-games/garage/internal/storage"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "garage: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("garage", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to config file (default ~/.garage/config.toml)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	args = flags.Args()
	if len(args) == 0 {
		usage()
		return nil
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(cfg.Log.Level, cfg.Log.JSON)

	cat, err := catalog.Open(cfg.Catalog.Path, log)
	if err != nil {
		return err
	}

	switch args[0] {
	case "catalog":
		return runCatalog(cat, args[1:])
	case "decks":
		return runDecks(cfg, args[1:])
	case "new":
		return runNewDeck(cfg, cat, args[1:])
	case "add":
		return runAdd(cfg, cat, log, args[1:])
	case "watch":
		return runWatch(cfg, cat, log)
	case "backup":
		path, err := storage.NewBackupManager(cfg.Database.Path).Backup(cfg.Database.BackupDir)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: garage [-config file] <command>

commands:
  catalog           list the card catalog in display order
  decks             list saved decks
  new <name> <div>  create and save an empty deck for a division
  add <deck> <card> [area]
                    attempt to add a catalog card to a saved deck
  watch             reload the catalog as its file changes on disk
  backup            snapshot the deck database`)
}

func runCatalog(cat *catalog.Store, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tNAME\tSUBTYPE\tBP\tCP")
	for _, c := range cat.Cards() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			c.ID, c.Type, c.Name, c.Subtype, c.BuildPointCost, c.CrewPointCost)
	}
	return w.Flush()
}

func openRepo(cfg *config.Config) (*storage.DB, storage.DeckRepository, error) {
	dbCfg := storage.DefaultConfig(cfg.Database.Path)
	dbCfg.AutoMigrate = cfg.Database.AutoMigrate
	db, err := storage.Open(dbCfg)
	if err != nil {
		return nil, nil, err
	}
	return db, storage.NewDeckRepository(db), nil
}

func runDecks(cfg *config.Config, _ []string) error {
	db, repo, err := openRepo(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	decks, err := repo.ListDecks(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDIVISION\tBP\tCP\tCARDS")
	for _, d := range decks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d/%d\t%d\n",
			d.ID, d.Name, d.Division,
			d.PointsUsed.Build, d.PointLimits.Build,
			d.PointsUsed.Crew, d.PointLimits.Crew,
			d.CardCount)
	}
	return w.Flush()
}

func runNewDeck(cfg *config.Config, _ *catalog.Store, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: garage new <name> <division>")
	}
	d := deck.New(args[0], args[1])

	db, repo, err := openRepo(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := repo.SaveDeck(context.Background(), d); err != nil {
		return err
	}
	fmt.Println(d.ID)
	return nil
}

func runWatch(cfg *config.Config, cat *catalog.Store, log zerolog.Logger) error {
	if !cfg.Catalog.Watch {
		return fmt.Errorf("catalog watching is disabled; set catalog.watch = true in the config")
	}

	w, err := catalog.Watch(cat, log)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	log.Info().Str("path", cat.Path()).Msg("watching catalog")
	for {
		select {
		case <-w.Changed():
			fmt.Printf("catalog reloaded: %d cards\n", len(cat.Cards()))
		case <-stop:
			return nil
		}
	}
}

func runAdd(cfg *config.Config, cat *catalog.Store, log zerolog.Logger, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: garage add <deck-id> <catalog-card-id> [area]")
	}
	deckID, cardID := args[0], args[1]
	var area card.Area
	if len(args) > 2 {
		area = card.Area(args[2])
	}

	c, ok := cat.CardByID(cardID)
	if !ok {
		return fmt.Errorf("catalog card %s not found", cardID)
	}

	db, repo, err := openRepo(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	d, err := repo.GetDeck(ctx, deckID)
	if err != nil {
		return err
	}

	store := deck.NewStore(cat, log, d)
	if warn, err := store.NumberAllowedWarning(cardID); err == nil && warn != nil {
		fmt.Printf("warning: already at %d of %d owned copies\n", warn.CurrentCount, warn.MaxAllowed)
	}

	// Pre-report the denial without touching the deck, then let the
	// add re-validate atomically.
	if v := store.CanAdd(c, area); v != nil {
		fmt.Printf("denied: %s\n", v.Reason())
		return nil
	}

	violation, err := store.AddCard(cardID, area)
	if err != nil {
		return err
	}
	if violation != nil {
		fmt.Printf("denied: %s\n", violation.Reason())
		return nil
	}

	if err := repo.SaveDeck(ctx, store.Deck()); err != nil {
		return err
	}
	updated := store.Deck()
	fmt.Printf("added: %d/%d BP, %d/%d CP\n",
		updated.PointsUsed.Build, updated.PointLimits.Build,
		updated.PointsUsed.Crew, updated.PointLimits.Crew)
	return nil
}

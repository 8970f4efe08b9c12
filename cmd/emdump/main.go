// Emdump inspects Ember heap snapshot stores.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chazu/ember/vm/heapdump"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	dbPath := flag.String("db", "ember-snapshots.db", "Snapshot store to read")
	show := flag.String("show", "", "Print the snapshot with the given ID")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: emdump [options]\n\n")
		fmt.Fprintf(os.Stderr, "Lists or prints heap snapshots from a snapshot store.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  emdump -db ember-snapshots.db            # List snapshots\n")
		fmt.Fprintf(os.Stderr, "  emdump -db ember-snapshots.db -show ID   # Print one snapshot\n")
	}
	flag.Parse()

	store, err := heapdump.OpenStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "emdump: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *show != "" {
		if err := printSnapshot(store, *show); err != nil {
			fmt.Fprintf(os.Stderr, "emdump: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := listSnapshots(store); err != nil {
		fmt.Fprintf(os.Stderr, "emdump: %v\n", err)
		os.Exit(1)
	}
}

func listSnapshots(store *heapdump.Store) error {
	summaries, err := store.List()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("no snapshots")
		return nil
	}
	for _, sum := range summaries {
		fmt.Printf("%s  process=%d  objects=%d  %s\n",
			sum.ID, sum.ProcessID, sum.Objects,
			sum.CapturedAt.Format(time.RFC3339))
	}
	return nil
}

func printSnapshot(store *heapdump.Store, id string) error {
	snap, err := store.Get(id)
	if err != nil {
		return err
	}

	fmt.Printf("snapshot %s\n", snap.ID)
	fmt.Printf("  process:  %d\n", snap.ProcessID)
	fmt.Printf("  captured: %s\n", time.Unix(0, snap.CapturedAt).Format(time.RFC3339Nano))
	fmt.Printf("  mailbox roots: %v\n", snap.MailboxRoots)
	fmt.Printf("  local roots:   %v\n", snap.LocalRoots)

	for i, rec := range snap.Objects {
		fmt.Printf("  [%d] %s", i, rec.Kind)
		if rec.HasName {
			fmt.Printf(" name=%q", rec.Name)
		}
		switch rec.Kind {
		case "integer":
			fmt.Printf(" value=%d", rec.Integer)
		case "float":
			fmt.Printf(" value=%g", rec.Float)
		case "string":
			fmt.Printf(" value=%q", rec.Text)
		case "array":
			fmt.Printf(" elements=%v", rec.Array)
		}
		if rec.Proto >= 0 {
			fmt.Printf(" proto=%d", rec.Proto)
		}
		if rec.Pinned {
			fmt.Printf(" pinned")
		}
		if !rec.Truthy {
			fmt.Printf(" falsy")
		}
		if len(rec.Attributes) > 0 {
			fmt.Printf(" attributes=%v", rec.Attributes)
		}
		if len(rec.Constants) > 0 {
			fmt.Printf(" constants=%v", rec.Constants)
		}
		if len(rec.Methods) > 0 {
			fmt.Printf(" methods=%v", rec.Methods)
		}
		fmt.Println()
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/milk9111/lightsout/ecs/component"
)

// writeReport prints one row per run and a closing average line.
func writeReport(w io.Writer, results []result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "run\tseed\ttier\twave\tkills\tspawned\tdamage\tshots\tacc\tpickups\toutcome\tmix")
	var waves, kills float64
	for _, r := range results {
		outcome := "survived"
		if !r.Survived {
			outcome = fmt.Sprintf("died %.1fs", r.DiedAt)
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%d\t%d\t%d\t%s\t%d/%d\t%s\t%s\n",
			r.Run, r.Seed, r.Difficulty, r.Wave, r.Stats.Kills, r.Stats.Spawned, r.Damage,
			r.Stats.ShotsFired, accuracy(r.Stats.ShotsHit, r.Stats.ShotsFired),
			r.Stats.PickupsCollected, r.Stats.PickupsDropped, outcome, mix(r.ByKind))
		waves += float64(r.Wave)
		kills += float64(r.Stats.Kills)
	}
	if n := float64(len(results)); n > 0 {
		fmt.Fprintf(tw, "avg\t\t\t%.1f\t%.1f\n", waves/n, kills/n)
	}
	return tw.Flush()
}

func accuracy(hit, fired int) string {
	if fired == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", 100*float64(hit)/float64(fired))
}

// mix lists spawn counts in archetype order, e.g. "w12 r3 j1 b0".
func mix(byKind map[string]int) string {
	out := ""
	for i, a := range component.Archetypes() {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%c%d", a.String()[0], byKind[a.String()])
	}
	return out
}

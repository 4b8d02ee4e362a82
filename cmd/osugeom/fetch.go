package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"osugeom/mapcache"
	"osugeom/osuapi"
)

var (
	fetchClientID     int
	fetchClientSecret string
	fetchCachePath    string
)

func init() {
	fetchCmd.Flags().IntVar(&fetchClientID, "client-id", 0, "osu! OAuth client ID")
	fetchCmd.Flags().StringVar(&fetchClientSecret, "client-secret", "", "osu! OAuth client secret")
	fetchCmd.Flags().StringVar(&fetchCachePath, "cache", "beatmaps.db", "path to the sqlite metadata cache")
	fetchCmd.MarkFlagRequired("client-id")
	fetchCmd.MarkFlagRequired("client-secret")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <beatmap-id>...",
	Short: "Fetch beatmap metadata from the osu! API into the local cache",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int, 0, len(args))
		for _, a := range args {
			id, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid beatmap id %q: %w", a, err)
			}
			ids = append(ids, id)
		}
		return fetch(cmd, ids)
	},
}

func fetch(cmd *cobra.Command, ids []int) error {
	store, err := mapcache.Open(fetchCachePath)
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := osuapi.NewClient(cmd.Context(), osuapi.Credentials{
		ClientID:     fetchClientID,
		ClientSecret: fetchClientSecret,
	})
	if err != nil {
		return err
	}

	for len(ids) > 0 {
		batch := ids
		if len(batch) > 50 {
			batch = batch[:50]
		}
		ids = ids[len(batch):]

		maps, err := client.Beatmaps(cmd.Context(), batch)
		if err != nil {
			return err
		}
		if err := store.Put(maps...); err != nil {
			return err
		}
		for _, m := range maps {
			fmt.Printf("cached %d: %s - %s [%s] (%s)\n",
				m.ID, m.Beatmapset.Artist, m.Beatmapset.Title, m.Version, m.Status)
		}
	}
	return nil
}

package main

import (
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/model"
	"storefront/internal/snapshot"

	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a sample smartphone snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = cfg.Snapshot.Path
		}

		products := sampleProducts()
		data, err := catalog.EncodeSnapshot(products)
		if err != nil {
			return err
		}
		if err := snapshot.WriteFile(out, data); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}

		logger.Info().Str("file", out).Int("products", len(products)).Msg("sample snapshot written")
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d products\n", out, len(products))
		return nil
	},
}

func init() {
	sampleCmd.Flags().String("out", "", "snapshot file to write (default SNAPSHOT_PATH)")
}

// sampleProducts is a small smartphone catalogue. Two entries have no brand
// and one has no images so every rendering branch has data.
func sampleProducts() []model.Product {
	img := func(id string, n int) []string {
		images := make([]string, 0, n)
		for i := range n {
			images = append(images, fmt.Sprintf("https://cdn.example.com/products/%s/%d.jpg", id, i+1))
		}
		return images
	}
	thumb := func(id string) string {
		return fmt.Sprintf("https://cdn.example.com/products/%s/thumbnail.jpg", id)
	}

	return []model.Product{
		{ID: "1", Title: "iPhone 9", Price: 549, Rating: 4.69, Brand: "Apple",
			Description: "An apple mobile which is nothing like apple", Thumbnail: thumb("1"), Images: img("1", 5)},
		{ID: "2", Title: "iPhone X", Price: 899, Rating: 4.44, Brand: "Apple",
			Description: "SIM-Free, Model A19211 6.5-inch Super Retina HD display", Thumbnail: thumb("2"), Images: img("2", 3)},
		{ID: "3", Title: "Samsung Universe 9", Price: 1249, Rating: 4.09, Brand: "Samsung",
			Description: "Samsung's new variant which goes beyond Galaxy to the Universe", Thumbnail: thumb("3"), Images: img("3", 1)},
		{ID: "4", Title: "OPPOF19", Price: 280, Rating: 4.3, Brand: "OPPO",
			Description: "OPPO F19 is officially announced on April 2021", Thumbnail: thumb("4"), Images: img("4", 5)},
		{ID: "5", Title: "Huawei P30", Price: 499, Rating: 4.09, Brand: "Huawei",
			Description: "Huawei's re-badged P30 Pro New Edition", Thumbnail: thumb("5"), Images: img("5", 3)},
		{ID: "6", Title: "Galaxy S21 Ultra", Price: 1199, Rating: 4.8, Brand: "Samsung",
			Description: "Pro-grade camera with 8K video", Thumbnail: thumb("6"), Images: img("6", 4)},
		{ID: "7", Title: "Pixel 7", Price: 599, Rating: 4.5, Brand: "Google",
			Description: "The all-pro Google phone", Thumbnail: thumb("7"), Images: img("7", 2)},
		{ID: "8", Title: "Nord CE 3", Price: 329, Rating: 3.9, Brand: "OnePlus",
			Description: "Fast and smooth with a long-lasting battery", Thumbnail: thumb("8"), Images: img("8", 2)},
		{ID: "9", Title: "Redmi Note 12", Price: 199, Rating: 3.4, Brand: "Xiaomi",
			Description: "Big screen, big battery, small price", Thumbnail: thumb("9"), Images: img("9", 3)},
		{ID: "10", Title: "Moto G Power", Price: 249, Rating: 2.8, Brand: "Motorola",
			Description: "Three-day battery life", Thumbnail: thumb("10"), Images: img("10", 1)},
		{ID: "11", Title: "Refurbished Flip Phone", Price: 59, Rating: 2.1,
			Description: "A basic flip phone for calls and texts", Thumbnail: thumb("11"), Images: nil},
		{ID: "12", Title: "iPhone 13 mini", Price: 699, Rating: 4.6, Brand: "Apple",
			Description: "Compact with a dual-camera system", Thumbnail: thumb("12"), Images: img("12", 4)},
		{ID: "13", Title: "Galaxy A54", Price: 449, Rating: 4.2, Brand: "Samsung",
			Description: "Awesome screen and a long-lasting battery", Thumbnail: thumb("13"), Images: img("13", 3)},
		{ID: "14", Title: "Budget Android 5G", Price: 129, Rating: 3.2,
			Description: "Unbranded 5G handset", Thumbnail: thumb("14"), Images: img("14", 1)},
	}
}

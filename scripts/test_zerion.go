//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/folio-service/folio_service/internal/adapters/zerion"
	"github.com/folio-service/folio_service/pkg/logger"
)

func main() {
	apiKey := os.Getenv("ZERION_API_KEY")
	if apiKey == "" {
		log.Fatal("ZERION_API_KEY environment variable is required")
	}

	address := getEnv("TEST_WALLET_ADDRESS", "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")

	zlog, err := logger.New("debug", "development")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	client := zerion.NewClient(zerion.Config{
		APIKey:   apiKey,
		Currency: "usd",
		Timeout:  30 * time.Second,
	}, zlog)

	ctx := context.Background()

	fmt.Println("🚀 Testing Zerion Integration...")

	fmt.Println("\n1. Testing Portfolio Endpoint...")
	portfolio, err := client.GetPortfolio(ctx, address)
	if err != nil {
		log.Fatalf("❌ Portfolio fetch failed: %v", err)
	}
	fmt.Printf("✅ Total position value: $%.2f\n", portfolio.Data.Attributes.Total.Positions)

	fmt.Println("\n2. Testing Positions Endpoint...")
	positions, err := client.GetPositions(ctx, address)
	if err != nil {
		log.Fatalf("❌ Positions fetch failed: %v", err)
	}
	fmt.Printf("✅ Found %d positions\n", len(positions.Data))
	for i, pos := range positions.Data {
		if i >= 5 {
			fmt.Println("   ...")
			break
		}
		value := 0.0
		if pos.Attributes.Value != nil {
			value = *pos.Attributes.Value
		}
		fmt.Printf("   %s (%s): $%.2f\n",
			pos.Attributes.FungibleInfo.Symbol, pos.Attributes.FungibleInfo.Name, value)
	}

	fmt.Println("\n3. Testing PnL Endpoint...")
	pnl, err := client.GetPnL(ctx, address)
	if err != nil {
		log.Printf("⚠️  PnL error: %v", err)
	} else {
		fmt.Printf("✅ Realized gain: $%.2f, Unrealized gain: $%.2f\n",
			pnl.Data.NumberAttr("realized_gain"), pnl.Data.NumberAttr("unrealized_gain"))
	}

	fmt.Println("\n🎉 Zerion integration test completed!")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

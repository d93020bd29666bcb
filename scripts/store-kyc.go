//go:build ignore

// store-kyc.go - Store a KYC record through a running KYC server
//
// Usage:
//   go run scripts/store-kyc.go -server http://localhost:8080 \
//     -keypair ~/.config/kyc/alice.json -airdrop 10000000 \
//     -name "Alice" -email alice@example.com -mobile +15550100 \
//     -gov-id P1234567 -face-verified
//
// A keypair file is created at -keypair if it does not exist yet.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chainsafe/kyc-ledger/pkg/keys"
	"github.com/chainsafe/kyc-ledger/pkg/kyc"
	"github.com/chainsafe/kyc-ledger/pkg/kyc/client"
)

var (
	serverURL    = flag.String("server", "http://localhost:8080", "KYC server base URL")
	keypairPath  = flag.String("keypair", "authority.json", "Authority keypair file (JSON byte array)")
	airdrop      = flag.Uint64("airdrop", 0, "Lamports to request from the faucet before storing")
	name         = flag.String("name", "", "Full name")
	email        = flag.String("email", "", "Email address")
	mobile       = flag.String("mobile", "", "Mobile number")
	govID        = flag.String("gov-id", "", "Government id number")
	faceVerified = flag.Bool("face-verified", false, "Face verification passed")
)

func main() {
	flag.Parse()

	kp, err := loadOrCreate(*keypairPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	c := client.New(*serverURL)

	fmt.Println("======================================================================")
	fmt.Println("STORE KYC RECORD")
	fmt.Println("======================================================================")
	fmt.Printf("Server:    %s\n", *serverURL)
	fmt.Printf("Authority: %s\n", kp.PublicKey)

	if *airdrop > 0 {
		resp, err := c.Airdrop(ctx, kp.PublicKey, *airdrop)
		if err != nil {
			fmt.Printf("Error: airdrop failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Balance:   %d lamports\n", resp.Lamports)
	}

	profile := kyc.Profile{
		Name:         *name,
		Email:        *email,
		Mobile:       *mobile,
		GovID:        *govID,
		FaceVerified: *faceVerified,
	}
	if err := profile.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	stored, err := c.StoreUserKyc(ctx, kp, profile)
	if err != nil {
		fmt.Printf("Error: store failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Record:    %s (bump %d)\n", stored.Address, stored.Bump)
	fmt.Printf("Tx:        %s\n", stored.TxID)
	fmt.Printf("Rent:      %d lamports (%s SOL)\n", stored.RentLamports, stored.RentSOL)

	rec, err := c.GetRecord(ctx, kp.PublicKey)
	if err != nil {
		fmt.Printf("Error: read back failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("----------------------------------------------------------------------")
	fmt.Printf("Name:          %s\n", rec.Data.Name())
	fmt.Printf("Email:         %s\n", rec.Data.Email())
	fmt.Printf("Mobile:        %s\n", rec.Data.Mobile())
	fmt.Printf("Gov ID:        %s\n", rec.Data.GovID())
	fmt.Printf("Face verified: %t\n", rec.Data.FaceVerified())
}

func loadOrCreate(path string) (*keys.KeyPair, error) {
	kp, err := keys.LoadKeyPair(path)
	if err == nil {
		return kp, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	kp, err = keys.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	if err := keys.SaveKeyPair(path, kp); err != nil {
		return nil, err
	}
	fmt.Printf("Created keypair %s\n", path)
	return kp, nil
}

package service

// StoreRequest asks the ledger to store the caller's KYC record. Signature is the
// base58 ed25519 signature of the authority over the store_user_kyc message
// (program id followed by instruction data).
type StoreRequest struct {
	Authority    string `json:"authority"`
	Signature    string `json:"signature"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	GovID        string `json:"gov_id"`
	FaceVerified bool   `json:"face_verified"`
}

// StoreResponse describes a stored record.
type StoreResponse struct {
	Address      string `json:"address"`
	Bump         uint8  `json:"bump"`
	Authority    string `json:"authority"`
	TxID         string `json:"tx_id"`
	RentLamports uint64 `json:"rent_lamports"`
	RentSOL      string `json:"rent_sol"`
}

// AddressResponse is the record address derived for an authority.
type AddressResponse struct {
	Authority string `json:"authority"`
	Address   string `json:"address"`
	Bump      uint8  `json:"bump"`
}

// AccountResponse is the raw state of a ledger account. Data is base64 in JSON.
type AccountResponse struct {
	Address  string `json:"address"`
	Owner    string `json:"owner"`
	Lamports uint64 `json:"lamports"`
	Data     []byte `json:"data"`
}

// AirdropRequest credits lamports to an address from the development faucet.
type AirdropRequest struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
}

// AirdropResponse reports the balance after an airdrop.
type AirdropResponse struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
}

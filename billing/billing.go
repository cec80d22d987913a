package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"

	"pitboxBackend/utils"
)

type (
	// PaymentVerifier confirms that a charge for extra model quota has
	// completed before any quota is granted. The actual payment provider
	// is an external collaborator behind this interface.
	PaymentVerifier interface {
		VerifyCharge(ctx context.Context, chargeToken string) (QuotaGrant, error)
	}

	QuotaGrant struct {
		ExtraModels int
	}

	// signedTokenVerifier accepts charge tokens of the form
	// "<charge id>:<hex hmac>" issued by the payment callback with a shared
	// secret. Keeps the grant path verifiable without talking to the
	// provider on every request.
	signedTokenVerifier struct {
		secret []byte
	}
)

const grantedModelsPerCharge = 5

func CreatePaymentVerifier() PaymentVerifier {
	return &signedTokenVerifier{
		secret: []byte(os.Getenv("PB_BILLING_SECRET")),
	}
}

func (v *signedTokenVerifier) VerifyCharge(ctx context.Context, chargeToken string) (QuotaGrant, error) {
	if len(v.secret) == 0 {
		return QuotaGrant{}, utils.ErrPaymentNotVerified
	}

	payload, signature, found := strings.Cut(chargeToken, ":")
	if !found {
		return QuotaGrant{}, utils.ErrPaymentNotVerified
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return QuotaGrant{}, utils.ErrPaymentNotVerified
	}

	return QuotaGrant{ExtraModels: grantedModelsPerCharge}, nil
}

package signing_test

import (
	"crypto/md5" //nolint:gosec // matches the server-side digest
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frc1418/go-tba/internal/signing"
)

func TestSignMatchesServerFormula(t *testing.T) {
	t.Parallel()

	secret := "s3cret"
	path := "event/2019casj/team_list/update"
	body := []byte(`["frc254","frc1418"]`)

	sum := md5.Sum([]byte(secret + "/api/trusted/v1/" + path + string(body))) //nolint:gosec // see above
	want := hex.EncodeToString(sum[:])

	assert.Equal(t, want, signing.Sign(secret, path, body))
}

func TestSignDeterministic(t *testing.T) {
	t.Parallel()

	body := []byte(`{"first_code":"CASJ"}`)
	a := signing.Sign("k", "event/2019casj/info/update", body)
	b := signing.Sign("k", "event/2019casj/info/update", body)

	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestSignSensitiveToEveryInput(t *testing.T) {
	t.Parallel()

	base := signing.Sign("k", "event/2019casj/info/update", []byte(`{"a":1}`))

	for i, body := range [][]byte{[]byte(`{"a":2}`), []byte(`{"b":1}`), []byte(`{"a":1} `)} {
		assert.NotEqual(t, base, signing.Sign("k", "event/2019casj/info/update", body), i)
	}

	assert.NotEqual(t, base, signing.Sign("K", "event/2019casj/info/update", []byte(`{"a":1}`)))
	assert.NotEqual(t, base, signing.Sign("k", "event/2019casa/info/update", []byte(`{"a":1}`)))
}

func TestSignerCustomDigest(t *testing.T) {
	t.Parallel()

	signer := signing.New(sha256.New)
	sig := signer.Sign("k", "event/x/media/add", nil)

	sum := sha256.Sum256([]byte("k/api/trusted/v1/event/x/media/add"))
	assert.Equal(t, hex.EncodeToString(sum[:]), sig)

	assert.Equal(t, signing.Sign("k", "p", nil), signing.New(nil).Sign("k", "p", nil))
}

package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"filippo.io/age"

	"dms-go/internal/model"
)

// PassphraseFunc supplies the passphrase protecting the age identity. It is
// called only when a load actually needs to decrypt.
type PassphraseFunc func() (string, error)

// AgeStore keeps the session age-encrypted at rest using an X25519 key
// pair. The recipient (public key) is stored in plaintext; the identity
// (private key) is encrypted with the user's passphrase using age's
// scrypt-based passphrase encryption.
type AgeStore struct {
	tokenPath     string
	recipientPath string
	identityPath  string
	passphrase    PassphraseFunc
}

var _ Store = (*AgeStore)(nil)

// NewAgeStore creates an AgeStore over the given key and token paths.
func NewAgeStore(tokenPath, recipientPath, identityPath string, passphrase PassphraseFunc) *AgeStore {
	return &AgeStore{
		tokenPath:     tokenPath,
		recipientPath: recipientPath,
		identityPath:  identityPath,
		passphrase:    passphrase,
	}
}

// Setup generates a new X25519 key pair, stores the recipient in plaintext,
// and encrypts the identity with the passphrase.
func (a *AgeStore) Setup(passphrase string) error {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(a.recipientPath), 0700); err != nil {
		return fmt.Errorf("creating recipient directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(a.identityPath), 0700); err != nil {
		return fmt.Errorf("creating identity directory: %w", err)
	}

	if err := os.WriteFile(a.recipientPath, []byte(identity.Recipient().String()+"\n"), 0644); err != nil {
		return fmt.Errorf("writing recipient: %w", err)
	}

	identFile, err := os.OpenFile(a.identityPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating identity file: %w", err)
	}
	defer identFile.Close()

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}

	w, err := age.Encrypt(identFile, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}

	if _, err := io.WriteString(w, identity.String()+"\n"); err != nil {
		return fmt.Errorf("writing encrypted identity: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing encrypted identity: %w", err)
	}

	return nil
}

// IsConfigured returns true if both key files exist.
func (a *AgeStore) IsConfigured() bool {
	if _, err := os.Stat(a.recipientPath); err != nil {
		return false
	}
	if _, err := os.Stat(a.identityPath); err != nil {
		return false
	}
	return true
}

// Save encrypts the session to the recipient and writes it to the token
// path. Saving never needs the passphrase.
func (a *AgeStore) Save(session model.Session) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}

	recipient, err := a.loadRecipient()
	if err != nil {
		return fmt.Errorf("loading recipient: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(a.tokenPath), 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	tokenFile, err := os.OpenFile(a.tokenPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating session file: %w", err)
	}
	defer tokenFile.Close()

	w, err := age.Encrypt(tokenFile, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("encrypting session: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing encrypted session: %w", err)
	}

	return nil
}

// Load decrypts the stored session. A missing token file means no session;
// the passphrase is requested only when a token file exists.
func (a *AgeStore) Load() (model.Session, bool, error) {
	ciphertext, err := os.ReadFile(a.tokenPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Session{}, false, nil
		}
		return model.Session{}, false, fmt.Errorf("reading session file: %w", err)
	}

	identity, err := a.unlockIdentity()
	if err != nil {
		return model.Session{}, false, err
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return model.Session{}, false, fmt.Errorf("decrypting session: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return model.Session{}, false, fmt.Errorf("reading decrypted session: %w", err)
	}

	sess, err := decodeSession(data)
	if err != nil {
		return model.Session{}, false, err
	}
	return sess, true, nil
}

// Clear removes the encrypted session file. The key pair is kept.
func (a *AgeStore) Clear() error {
	if err := os.Remove(a.tokenPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// unlockIdentity decrypts the identity file with the passphrase and parses
// the X25519 identity out of it.
func (a *AgeStore) unlockIdentity() (age.Identity, error) {
	identData, err := os.ReadFile(a.identityPath)
	if err != nil {
		return nil, fmt.Errorf("reading identity file: %w", err)
	}

	passphrase, err := a.passphrase()
	if err != nil {
		return nil, fmt.Errorf("obtaining passphrase: %w", err)
	}

	scryptIdentity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	decReader, err := age.Decrypt(bytes.NewReader(identData), scryptIdentity)
	if err != nil {
		return nil, fmt.Errorf("decrypting identity: %w", err)
	}

	keyData, err := io.ReadAll(decReader)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted identity: %w", err)
	}

	identities, err := age.ParseIdentities(bytes.NewReader(keyData))
	if err != nil {
		return nil, fmt.Errorf("parsing identity: %w", err)
	}

	if len(identities) == 0 {
		return nil, fmt.Errorf("no identities found in identity file")
	}

	return identities[0], nil
}

// loadRecipient reads the recipient from disk and parses it.
func (a *AgeStore) loadRecipient() (age.Recipient, error) {
	pubData, err := os.ReadFile(a.recipientPath)
	if err != nil {
		return nil, fmt.Errorf("reading recipient: %w", err)
	}

	recipients, err := age.ParseRecipients(bytes.NewReader(pubData))
	if err != nil {
		return nil, fmt.Errorf("parsing recipient: %w", err)
	}

	if len(recipients) == 0 {
		return nil, fmt.Errorf("no recipients found in recipient file")
	}

	return recipients[0], nil
}

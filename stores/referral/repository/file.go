package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/xerrors"

	bCtx "github.com/padx/goapi/base/ctx"
	"github.com/padx/goapi/base/log"
	"github.com/padx/goapi/domain"
	"github.com/padx/goapi/domain/referral"
)

// fileRepo stores one JSON document per wallet under a local directory,
// keyed by the lower-cased wallet address. This is the durable local
// storage for the referral-code cache; callers treat Save as
// best-effort.
type fileRepo struct {
	dir string
	mu  sync.Mutex
}

func NewFileRepo(dir string) referral.Repo {
	return &fileRepo{dir: dir}
}

func (r *fileRepo) path(wallet domain.Address) string {
	return filepath.Join(r.dir, wallet.ToLowerStr()+".json")
}

func (r *fileRepo) Load(ctx bCtx.Ctx, wallet domain.Address) (*referral.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path(wallet))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		ctx.WithFields(log.Fields{
			"wallet": wallet,
			"err":    err,
		}).Error("read referral cache failed")
		return nil, err
	}
	var w referral.Wallet
	if err := json.Unmarshal(raw, &w); err != nil {
		ctx.WithFields(log.Fields{
			"wallet": wallet,
			"err":    err,
		}).Error("unmarshal referral cache failed")
		return nil, err
	}
	return &w, nil
}

func (r *fileRepo) Save(ctx bCtx.Ctx, w *referral.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return xerrors.Errorf("%w: %s", domain.ErrStoragePersistFailed, err.Error())
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return xerrors.Errorf("%w: %s", domain.ErrStoragePersistFailed, err.Error())
	}
	path := r.path(w.Address)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return xerrors.Errorf("%w: %s", domain.ErrStoragePersistFailed, err.Error())
	}
	if err := os.Rename(tmp, path); err != nil {
		return xerrors.Errorf("%w: %s", domain.ErrStoragePersistFailed, err.Error())
	}
	return nil
}

// Package contract は商品ストアのアドレス規約。
// コレクション（全商品）と単一行（id指定）の2種類のURIだけを扱う。
package contract

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultScheme    = "content"
	DefaultAuthority = "com.example.android.inventory"

	// コレクションのパスセグメント
	PathProducts = "products"
)

var (
	ErrNotItemURI       = errors.New("contract: not an item uri")
	ErrUnknownURI       = errors.New("contract: uri does not belong to this contract")
	ErrNegativeID       = errors.New("contract: id must be >= 0")
	ErrInvalidAuthority = errors.New("contract: authority must not be empty")
)

// Contract はプロセス起動時に一度だけ作る不変のアドレス設定。
type Contract struct {
	scheme    string
	authority string
	path      string
}

func New(scheme, authority string) (Contract, error) {
	if scheme == "" {
		scheme = DefaultScheme
	}
	if strings.TrimSpace(authority) == "" {
		return Contract{}, ErrInvalidAuthority
	}
	return Contract{scheme: scheme, authority: authority, path: PathProducts}, nil
}

func Default() Contract {
	c, _ := New(DefaultScheme, DefaultAuthority)
	return c
}

func (c Contract) Authority() string { return c.authority }

// 全商品を指すURI
func (c Contract) CollectionURI() string {
	return fmt.Sprintf("%s://%s/%s", c.scheme, c.authority, c.path)
}

// id指定の1行を指すURI（コレクションURIにidを付加する）
func (c Contract) ItemURI(id int64) string {
	return fmt.Sprintf("%s/%d", c.CollectionURI(), id)
}

// ItemURIの逆変換。ItemURI(k)をParseItemIDに通すと必ずkが返る（往復則）。
func (c Contract) ParseItemID(raw string) (int64, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("contract: parse %q: %w", raw, err)
	}
	if u.Scheme != c.scheme || u.Host != c.authority {
		return 0, ErrUnknownURI
	}
	rest, ok := strings.CutPrefix(u.Path, "/"+c.path+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return 0, ErrNotItemURI
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id < 0 {
		return 0, ErrNotItemURI
	}
	return id, nil
}

// 形を説明するためだけのタグ。挙動は持たない
func (c Contract) DirType() string {
	return fmt.Sprintf("vnd.inventory.dir/%s.%s", c.authority, c.path)
}

func (c Contract) ItemType() string {
	return fmt.Sprintf("vnd.inventory.item/%s.%s", c.authority, c.path)
}

// URIが指す資源の形（コレクションか単一行か）をタグで返す
func (c Contract) TypeOf(raw string) (string, error) {
	if raw == c.CollectionURI() {
		return c.DirType(), nil
	}
	if _, err := c.ParseItemID(raw); err == nil {
		return c.ItemType(), nil
	}
	return "", ErrUnknownURI
}

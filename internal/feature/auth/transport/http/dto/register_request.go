// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は/auth/registerエンドポイントのリクエストボディを表します。
// パスワードのバイト長上限はハッシュアルゴリズムに依存するため、ユースケース層で検証します。
type RegisterReq struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required"`
}

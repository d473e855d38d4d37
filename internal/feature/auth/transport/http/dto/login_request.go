// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/api/users/loginエンドポイントのリクエストボディを表します。
// 空欄チェックはusecaseで行います。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

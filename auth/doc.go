// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential hashing and session tokens.

Passwords are hashed with bcrypt (HashPassword / CheckPassword); the only
validation rule is a minimum length of 8 characters.

Sessions are stateless HS256 JWTs issued by JWTManager:

	mgr := auth.NewJWTManager(secret, 24*time.Hour)
	token, err := mgr.Generate(user)
	claims, err := mgr.Validate(token)

Claims carry the user ID and email; middleware.RequireUser puts both into
the request context for handlers.
*/
package auth

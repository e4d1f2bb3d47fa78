// Package github fetches repository files through the GitHub contents API.
//
// # Overview
//
// [ContentClient] issues one authenticated GET per file to
// https://api.github.com/repos/{owner}/{repo}/contents/{path} and returns
// the decoded text:
//
//	client := github.NewContentClient(token, github.WithUserAgent("bevy-tools"))
//	file, err := client.FetchFile(ctx, "bevyengine", "bevy", "Cargo.toml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(file.Content)
//
// The API answers with a JSON document whose content is base64 encoded.
// Any other encoding is reported as UNSUPPORTED_ENCODING. Content that is
// not valid base64 or not valid UTF-8 is reported as INVALID_RESPONSE.
//
// # Authentication
//
// The bearer token is passed to [NewContentClient]. The client never reads
// the environment itself.
//
// # Repository Links
//
// [ParseRepoURL] turns a repository link such as
// https://github.com/bevyengine/bevy into an owner and repository name.
// Links to other hosts return [ErrNotGitHub].
package github

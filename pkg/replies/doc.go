// Package replies tracks replies to a user's Reddit comments.
//
// A post's comment tree is fetched through a list of strategies (a direct
// request followed by optional proxy prefixes) and walked to find every
// comment the tracked user wrote, together with the direct replies from
// other people and whether the user already answered them somewhere below.
// All tree walks stop at MaxDepth.
package replies

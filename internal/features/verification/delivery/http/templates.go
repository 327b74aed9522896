package http

import "html/template"

var pages = template.Must(template.New("pages").Parse(landingPage + successPage))

const landingPage = `{{define "landing"}}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Discord Verification</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            display: flex;
            align-items: center;
            justify-content: center;
            color: white;
            margin: 0;
        }
        .container {
            background: rgba(255, 255, 255, 0.1);
            border-radius: 20px;
            padding: 40px;
            text-align: center;
            max-width: 400px;
            width: 90%;
        }
        .auth-btn {
            background: #5865F2;
            color: white;
            padding: 15px 30px;
            text-decoration: none;
            border-radius: 12px;
            font-size: 16px;
            font-weight: 600;
            display: inline-block;
        }
        .security-note {
            margin-top: 25px;
            font-size: 12px;
            opacity: 0.7;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Account Verification</h1>
        <p>Verify your Discord account to prove you're not using an alt account</p>
        <a href="{{.AuthURL}}" class="auth-btn">🔗 Connect Discord Account</a>
        <div class="security-note">
            🔒 Your data is processed securely and only used for verification purposes
        </div>
    </div>
</body>
</html>{{end}}`

const successPage = `{{define "success"}}<html>
    <body style="font-family: Arial; text-align: center; padding: 50px;">
        <h1>Verification Complete</h1>
        <p>Your server data has been sent for verification. You may close this window.</p>
    </body>
</html>{{end}}`

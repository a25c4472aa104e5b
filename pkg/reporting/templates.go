/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: templates.go
Description: HTML template for the batch dashboard. Chart configurations are emitted
inside the script block, where html/template encodes them as JSON.
*/

package reporting

// dashboardTemplate is the main HTML template for the dashboard
const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            color: #333;
        }

        .container {
            max-width: 1400px;
            margin: 0 auto;
            padding: 20px;
        }

        .header, .language, .stat-card {
            background: rgba(255, 255, 255, 0.95);
            border-radius: 15px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
        }

        .header {
            padding: 30px;
            margin-bottom: 30px;
            text-align: center;
        }

        .header h1 {
            color: #4a5568;
            font-size: 2.2rem;
            margin-bottom: 10px;
        }

        .header p, .label {
            color: #718096;
        }

        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }

        .stat-card {
            padding: 20px;
        }

        .stat-card .value {
            font-size: 2rem;
            font-weight: 700;
            color: #2d3748;
        }

        .label {
            font-size: 0.85rem;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }

        .language {
            padding: 25px;
            margin-bottom: 30px;
        }

        .language h2 {
            color: #4a5568;
            margin-bottom: 15px;
        }

        .charts-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(450px, 1fr));
            gap: 20px;
            margin: 20px 0;
        }

        .chart-wrapper {
            position: relative;
            height: 300px;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            margin-top: 10px;
        }

        th, td {
            text-align: left;
            padding: 6px 10px;
            border-bottom: 1px solid #e2e8f0;
            font-family: monospace;
        }

        .warning {
            color: #dd6b20;
        }

        .footer {
            text-align: center;
            color: rgba(255, 255, 255, 0.8);
            padding: 20px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
            <p>Generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM"}} | Run: {{.RunID}} | Session: {{.SessionID}}{{if .Table}} | Table: {{.Table}}{{end}}</p>
        </div>

        <div class="stats-grid">
            <div class="stat-card"><div class="value">{{.Stats.Languages}}</div><div class="label">Languages</div></div>
            <div class="stat-card"><div class="value">{{.Stats.Targets}}</div><div class="label">Targets</div></div>
            <div class="stat-card"><div class="value">{{.Stats.NaturalClasses}}</div><div class="label">Natural classes</div></div>
            <div class="stat-card"><div class="value">{{.Stats.NonNatural}}</div><div class="label">Not natural</div></div>
            <div class="stat-card"><div class="value">{{.Stats.GreedyFailures}}</div><div class="label">Greedy failures</div></div>
            <div class="stat-card"><div class="value">{{printf "%.1f" .Stats.TargetsPerSecond}}</div><div class="label">Targets / sec</div></div>
        </div>

        {{range $i, $lang := .Languages}}
        <div class="language">
            <h2>{{$lang.Name}}{{if $lang.Family}} <span class="label">{{$lang.Family}}</span>{{end}}</h2>
            <p>{{$lang.Phonemes}} phonemes, {{$lang.NaturalClasses}} natural classes, greedy longer than minimal for {{$lang.GreedyLonger}}</p>
            {{if $lang.NonNatural}}<p class="warning">Not natural classes: {{range $lang.NonNatural}}{{.}} {{end}}</p>{{end}}
            {{if $lang.Missing}}<p class="warning">Missing from the feature table: {{range $lang.Missing}}{{.}} {{end}}</p>{{end}}

            <div class="charts-grid">
                {{range $j, $c := $lang.Charts}}
                <div class="chart-wrapper"><canvas id="chart-{{$i}}-{{$j}}"></canvas></div>
                {{end}}
            </div>

            <h3>Minimal descriptions</h3>
            <table>
                <tr><th>Phoneme</th><th>Length</th><th>Descriptions</th></tr>
                {{range $lang.Descriptions}}
                <tr><td>{{.Phoneme}}</td><td>{{.Length}}</td><td>{{range .Descriptions}}{{.}} {{end}}</td></tr>
                {{end}}
            </table>

            {{if $lang.TreeError}}
            <p class="warning">Tree search skipped: {{$lang.TreeError}}</p>
            {{else if $lang.BestTree}}
            <h3>Best tree ({{$lang.BestCount}} phonemes matched, {{$lang.BestTrees}} best trees)</h3>
            <table>
                <tr><th>Phoneme</th><th>Length</th><th>Description</th></tr>
                {{range $lang.BestTree}}
                <tr><td>{{.Phoneme}}</td><td>{{.Length}}</td><td>{{range .Descriptions}}{{.}}{{end}}</td></tr>
                {{end}}
            </table>
            {{end}}
        </div>
        {{end}}
    </div>

    <div class="footer">
        <p>featuremin</p>
    </div>

    <script>
        Chart.defaults.font.family = "'Segoe UI', Tahoma, Geneva, Verdana, sans-serif";
        Chart.defaults.color = '#4a5568';

        const charts = {{.Languages}};
        charts.forEach((lang, i) => {
            (lang.charts || []).forEach((config, j) => {
                new Chart(document.getElementById('chart-' + i + '-' + j), config);
            });
        });
    </script>
</body>
</html>`

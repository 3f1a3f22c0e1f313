/*
 * Minis
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package server

/*
TermSRC is the terminal HTML as a text blob. The terminal talks to a session
on the websocket endpoint.
*/
const TermSRC = `
<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Minis Terminal</title>
    <style>
        body {
            background: #fff;
            font-family: 'verdana';
            font-size: 11px;
            margin: 0;
            min-width: 320px;
        }

        .t-header {
            background: linear-gradient(#000, #444);
            color: #fff;
            font-weight: bold;
            padding: 0 1em;
            margin: 0 0 1em 0;
            box-shadow: 3px 3px 3px rgba(50, 50, 50, 0.25);
        }

        .t-header h1 {
            display: inline-block;
            font-size: 18px;
            margin: 3px 0;
        }

        .t-terms {
            padding: 0 10%;
            display: inline-block;
            width: 80%
        }

        .t-terms .t-term {
            background: #EEEEEE;
            padding: 10px;
            border: #000000 2px solid;
            border-radius: 10px;
            margin: 3em 0 0 0;
        }

        .t-terms .t-term.t-output-term {
            white-space: pre-wrap;
            font-family: "Lucida Console", "Courier";
        }

        .t-terms .t-term.t-output-term.t-error {
            background: #FFBBBB;
        }

        .t-terms .t-term.t-output-term.t-normal {
            background: #B3D9FF;
        }

        .t-terms .t-term .t-input {
            width: 100%;
            min-height: 4em;
            font-family: "Lucida Console", "Courier";
            tab-size: 4;
            border: none;
            background: transparent;
            outline: none;
        }

        .t-terms .t-term .t-button {
            background: #EEEEEE;
            border: #000000 2px solid;
            margin: 2px;
            border-radius: 10px;
            font-weight: bold;
        }
    </style>
  </head>
  <body onload="t.main.init()">

    <div class="t-header"><h1 id="name"></h1> <h1 id="version"></h1></div>
    <div id="terms" class="t-terms"></div>

    <script>

        // Utility functions
        // =================

        if (t === undefined) {
          var t = {};
        }

        t.$ = function(id) { "use strict"; return document.getElementById(id); };
        t.esc = function (str) { "use strict"; return str.replace(/&/g,'&amp;').replace(/</g,'&lt;').replace(/>/g,'&gt;' ); };
        t.insert = function(element, child) { "use strict"; element.appendChild(child); return element; };
        t.create = function(tag, attrs) {
            "use strict";
            var element = document.createElement(tag);
            for (var a in attrs || {}) {
                element.setAttribute(a, attrs[a]);
            }
            return element;
        };
        t.addEvent = function (element, eventName, func) {
            "use strict";
            element.addEventListener(eventName, func, false);
        };

        // Global variables
        // ================

        t.apiPrefix = "/minis";

        // Console
        // =======

        t.main = {

            sock : null,
            out : null,

            init : function() {
                "use strict";

                var http = new XMLHttpRequest();

                http.open("GET", t.apiPrefix + "/about/", true);
                http.onload = function () {
                    var r = JSON.parse(http.response);

                    t.$("name").innerHTML = t.esc(r.product);
                    t.$("version").innerHTML = t.esc(r.version);

                    if (r.sessions) {
                        t.main.connect();
                    }
                };
                http.send();
            },

            // Open a session on the websocket endpoint.
            //
            connect : function () {
                "use strict";
                var proto = window.location.protocol === "https:" ? "wss://" : "ws://";

                t.main.sock = new WebSocket(proto + window.location.host +
                    t.apiPrefix + "/sock/", "minis-sock");

                t.main.sock.onmessage = function (e) {
                    var msg = JSON.parse(e.data);

                    if (msg.type === "init_success") {
                        t.main.addPrompt();
                    } else if (msg.type === "output") {
                        t.main.out.innerHTML += t.esc(msg.line) + "\n";
                    } else if (msg.type === "error") {
                        t.main.addOutput(msg.error, "t-error");
                        t.main.addPrompt();
                    } else if (msg.type === "done") {
                        t.main.addPrompt();
                    }
                };

                t.main.sock.onclose = function () {
                    t.main.addOutput("Session closed", "t-error");
                };
            },

            // Add a new prompt element.
            //
            addPrompt : function () {
                "use strict";
                var term = t.create("div", { "class" : "t-term" }),
                    input = t.create("textarea", { "class" : "t-input" }),
                    buttonOK = t.create("button", { "class" : "t-button" });

                buttonOK.innerHTML = "Run";

                t.insert(term, input);
                t.insert(term, buttonOK);
                t.insert(t.$("terms"), term);

                input.focus();

                var exec = function () {
                    input.readOnly = true;
                    t.main.out = t.create("div", { "class" : "t-term t-output-term t-normal" });
                    t.insert(t.$("terms"), t.main.out);
                    t.main.sock.send(JSON.stringify({ "code" : input.value }));
                };

                t.addEvent(input, "keydown", function (e) {

                    // Tab inserts a tab character

                    if (e.keyCode === 9) {
                        e.preventDefault();
                        var s = input.selectionStart;
                        input.value = input.value.substring(0, s) + "\t" + input.value.substring(input.selectionEnd);
                        input.selectionStart = input.selectionEnd = s + 1;
                    }

                    // Shift+Return runs the code

                    if (e.shiftKey && e.keyCode === 13) {
                        e.preventDefault();
                        exec();
                    }
                });

                t.addEvent(buttonOK, "click", exec);
            },

            // Add an output element.
            //
            addOutput : function (text, cls) {
                "use strict";
                var term = t.create("div", { "class" : "t-term t-output-term " + cls });
                term.innerHTML = t.esc(text);
                t.insert(t.$("terms"), term);
            }
        };
    </script>
  </body>
</html>
`
